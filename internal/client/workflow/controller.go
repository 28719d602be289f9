package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/digiprop/inspect/internal/backend"
	"github.com/digiprop/inspect/internal/client/storage"
	"github.com/digiprop/inspect/internal/models"
)

// Backend is the slice of the backend contract the workflow uses.
type Backend interface {
	GetInspections(ctx context.Context) backend.Response[[]models.Inspection]
	GetInspectionByID(ctx context.Context, id int) backend.Response[models.Inspection]
	CreateInspection(ctx context.Context, insp models.Inspection) backend.Response[models.Inspection]
	UpdateInspection(ctx context.Context, id int, patch models.InspectionPatch) backend.Response[models.Inspection]
}

// NoticeLevel classifies a user-facing notice.
type NoticeLevel string

const (
	NoticeError   NoticeLevel = "error"
	NoticeSuccess NoticeLevel = "success"
)

// Notice is a transient message surfaced to the user, the equivalent of
// an alert dialog.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithNotifier registers a callback invoked for every notice.
func WithNotifier(fn func(Notice)) Option {
	return func(c *Controller) { c.notify = fn }
}

// Controller owns the wizard state. All mutation goes through event
// methods; each persists what it changed before returning, so the
// in-memory state never gets ahead of storage by more than the
// in-flight write queue.
type Controller struct {
	backend Backend
	writer  *storage.Writer
	store   storage.Store
	device  CaptureDevice
	log     *zap.Logger
	now     func() time.Time
	notify  func(Notice)

	mu               sync.Mutex
	screen           Screen
	data             InspectionData
	selectedRoom     string
	selectedRooms    []string
	currentRoomIndex int
	roomData         map[string]models.RoomInspectionData
	roomPhotos       map[string][]string
	dateTime         models.DateTimeData
	property         PropertyForm
	coverImage       string
	inspectionID     int
	inspections      []models.Inspection
	busy             bool
	lastErr          string
	notices          []Notice
}

func New(b Backend, store storage.Store, device CaptureDevice, log *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		backend:       b,
		store:         store,
		writer:        storage.NewWriter(store, log),
		device:        device,
		log:           log,
		now:           time.Now,
		screen:        ScreenHome,
		selectedRooms: defaultRooms(),
		roomData:      make(map[string]models.RoomInspectionData),
		roomPhotos:    make(map[string][]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// post records a notice and forwards it to the notifier if set.
// Caller holds c.mu.
func (c *Controller) post(level NoticeLevel, text string) {
	n := Notice{Level: level, Text: text}
	c.notices = append(c.notices, n)
	if c.notify != nil {
		c.notify(n)
	}
}

// at reports whether the controller is on one of the given screens.
// Events arriving for a different screen are stale and ignored.
func (c *Controller) at(screens ...Screen) bool {
	for _, s := range screens {
		if c.screen == s {
			return true
		}
	}
	return false
}

func (c *Controller) persist(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Error("marshal state", zap.String("key", key), zap.Error(err))
		return
	}
	c.writer.Set(key, string(data))
}

// Load restores the in-progress inspection from storage. A missing or
// blank address gets the placeholder so a resumed flow always has one.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok, err := c.store.Get(ctx, keyInspectionData)
	if err != nil {
		return err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &c.data); err != nil {
			c.log.Warn("corrupt saved inspection data", zap.Error(err))
		}
	}
	if c.data.Address == "" {
		c.data.Address = defaultAddress
		c.persist(keyInspectionData, c.data)
	}

	if raw, ok, _ = c.store.Get(ctx, keySelectedRooms); ok {
		var rooms []string
		if err := json.Unmarshal([]byte(raw), &rooms); err == nil {
			c.selectedRooms = rooms
		}
	}
	if raw, ok, _ = c.store.Get(ctx, keyRoomInspectionData); ok {
		if err := json.Unmarshal([]byte(raw), &c.roomData); err != nil {
			c.log.Warn("corrupt saved room data", zap.Error(err))
		}
	}
	if raw, ok, _ = c.store.Get(ctx, keyRoomPhotos); ok {
		if err := json.Unmarshal([]byte(raw), &c.roomPhotos); err != nil {
			c.log.Warn("corrupt saved room photos", zap.Error(err))
		}
	}
	if raw, ok, _ = c.store.Get(ctx, keyPropertyData); ok {
		if err := json.Unmarshal([]byte(raw), &c.property); err != nil {
			c.log.Warn("corrupt saved property data", zap.Error(err))
		}
	}
	if raw, ok, _ = c.store.Get(ctx, keyPropertyCoverImage); ok {
		c.coverImage = raw
	}
	return nil
}

// Refresh reloads the inspection list from the backend.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.busy = true
	c.mu.Unlock()

	resp := c.backend.GetInspections(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if !resp.Success || resp.Data == nil {
		c.lastErr = resp.Error
		if c.lastErr == "" {
			c.lastErr = "Failed to fetch inspections"
		}
		return
	}
	c.lastErr = ""
	c.inspections = *resp.Data
}

// --- navigation within and around the wizard ---

func (c *Controller) GoHome() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen = ScreenHome
}

func (c *Controller) GoProfile() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen = ScreenProfile
}

// StartInspection begins a fresh capture. Working data is reset, except
// the room selection which carries over until changed.
func (c *Controller) StartInspection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = InspectionData{}
	c.roomData = make(map[string]models.RoomInspectionData)
	c.roomPhotos = make(map[string][]string)
	c.dateTime = models.DateTimeData{}
	c.inspectionID = 0
	c.persist(keyInspectionData, c.data)
	c.persist(keyRoomInspectionData, c.roomData)
	c.persist(keyRoomPhotos, c.roomPhotos)
	c.screen = ScreenCreateInspection
}

// CreateInspectionNext merges the form into the working record and
// moves to confirmation.
func (c *Controller) CreateInspectionNext(form InspectionForm) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.at(ScreenCreateInspection) {
		return
	}
	c.data.Address = form.Address
	c.data.Client = form.Client
	c.data.InspectionDate = form.InspectionDate
	c.data.InspectionTime = form.InspectionTime
	c.data.Bathroom = form.Bathroom
	c.data.Bedroom = form.Bedroom
	c.data.AdditionalNotes = form.AdditionalNotes
	c.persist(keyInspectionData, c.data)
	c.screen = ScreenConfirmation
}

func (c *Controller) ConfirmationBack() {
	c.stepTo(ScreenConfirmation, ScreenCreateInspection)
}

func (c *Controller) ConfirmationSave() {
	c.stepTo(ScreenConfirmation, ScreenPropertyDetails)
}

func (c *Controller) PropertyDetailsBack() {
	c.stepTo(ScreenPropertyDetails, ScreenConfirmation)
}

func (c *Controller) PropertyDetailsNext() {
	c.stepTo(ScreenPropertyDetails, ScreenRoomSelection)
}

// SavePropertyDetails persists the property form without navigating;
// the step writes through on every field change.
func (c *Controller) SavePropertyDetails(form PropertyForm) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.property = form
	c.persist(keyPropertyData, form)
}

// SetCoverImage records the property cover image URI. Clearing it does
// not remove the stored value.
func (c *Controller) SetCoverImage(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.coverImage = uri
	if uri != "" {
		c.writer.Set(keyPropertyCoverImage, uri)
	}
}

func (c *Controller) RoomSelectionBack() {
	c.stepTo(ScreenRoomSelection, ScreenPropertyDetails)
}

// SaveRoomSelection fixes the rooms to walk, resets the traversal to
// the first room, and moves on to scheduling.
func (c *Controller) SaveRoomSelection(rooms []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.at(ScreenRoomSelection) {
		return
	}
	c.selectedRooms = rooms
	c.persist(keySelectedRooms, rooms)
	c.currentRoomIndex = 0
	if len(rooms) > 0 {
		c.selectedRoom = rooms[0]
	} else {
		c.selectedRoom = ""
	}
	c.screen = ScreenDateSelector
}

// SelectRoom jumps the traversal to the named room and opens capture.
// Unknown rooms restart from the first.
func (c *Controller) SelectRoom(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.at(ScreenRoomSelection) {
		return
	}
	c.selectedRoom = name
	c.currentRoomIndex = 0
	for i, r := range c.selectedRooms {
		if r == name {
			c.currentRoomIndex = i
			break
		}
	}
	c.screen = ScreenImageSelection
}

func (c *Controller) DateSelectorBack() {
	c.stepTo(ScreenDateSelector, ScreenRoomSelection)
}

// SelectDateTime records the schedule and creates the inspection on the
// backend. On failure the user stays on the date selector.
func (c *Controller) SelectDateTime(ctx context.Context, date, timeOfDay, inspectionType, keyLocation string) {
	c.mu.Lock()
	if !c.at(ScreenDateSelector) {
		c.mu.Unlock()
		return
	}
	c.dateTime = models.DateTimeData{
		Date:           date,
		Time:           timeOfDay,
		InspectionType: inspectionType,
		KeyLocation:    keyLocation,
	}
	c.data.InspectionDate = date
	c.data.InspectionTime = timeOfDay
	c.data.InventoryType = inspectionType
	c.data.LocationKey = keyLocation
	c.persist(keyInspectionData, c.data)
	payload := c.inspectionPayload()
	c.busy = true
	c.mu.Unlock()

	resp := c.backend.CreateInspection(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	// The user may have navigated away while the call was in flight.
	if !c.at(ScreenDateSelector) {
		return
	}
	if !resp.Success || resp.Data == nil {
		c.post(NoticeError, "Failed to save inspection data. Please try again.")
		return
	}
	c.inspectionID = resp.Data.ID
	c.screen = ScreenSummary
}

func (c *Controller) ImageSelectionBack() {
	c.stepTo(ScreenImageSelection, ScreenRoomSelection)
}

// TakePhoto captures a camera image for the current room. Whatever the
// outcome, the flow proceeds to the room inspection screen; a denied
// permission or failed capture only skips the append.
func (c *Controller) TakePhoto(ctx context.Context) {
	c.capturePhoto(ctx, c.device.TakePhoto,
		"Sorry, we need camera permissions to make this work!",
		"Failed to take photo. Please try again.")
}

// PickFromLibrary selects an existing image for the current room.
func (c *Controller) PickFromLibrary(ctx context.Context) {
	c.capturePhoto(ctx, c.device.PickFromLibrary,
		"Sorry, we need camera roll permissions to make this work!",
		"Failed to pick image. Please try again.")
}

func (c *Controller) capturePhoto(
	ctx context.Context,
	capture func(context.Context) (CaptureResult, error),
	deniedMsg, failedMsg string,
) {
	c.mu.Lock()
	if !c.at(ScreenImageSelection, ScreenRoomInspection) {
		c.mu.Unlock()
		return
	}
	c.busy = true
	c.mu.Unlock()

	result, err := capture(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	switch {
	case errors.Is(err, ErrPermissionDenied):
		c.post(NoticeError, deniedMsg)
	case err != nil:
		c.log.Error("capture failed", zap.Error(err))
		c.post(NoticeError, failedMsg)
	case !result.Canceled:
		c.roomPhotos[c.selectedRoom] = append(c.roomPhotos[c.selectedRoom], result.URI)
		c.persist(keyRoomPhotos, c.roomPhotos)
		c.persist(roomPhotosKey(c.selectedRoom), c.roomPhotos[c.selectedRoom])
	}
	c.screen = ScreenRoomInspection
}

func (c *Controller) RoomInspectionBack() {
	c.stepTo(ScreenRoomInspection, ScreenImageSelection)
}

// SaveRoomInspection marks the current room complete and routes to the
// next step: room selection while rooms remain, otherwise the date
// selector. If the inspection already exists on the backend the room
// data is pushed up as a partial update.
func (c *Controller) SaveRoomInspection(ctx context.Context) {
	c.mu.Lock()
	if !c.at(ScreenRoomInspection) {
		c.mu.Unlock()
		return
	}
	photos := append([]string(nil), c.roomPhotos[c.selectedRoom]...)
	c.roomData[c.selectedRoom] = models.RoomInspectionData{
		Completed: true,
		Timestamp: c.now().UTC().Format(time.RFC3339),
		Photos:    photos,
	}
	c.persist(keyRoomInspectionData, c.roomData)
	if len(photos) > 0 {
		c.persist(roomPhotosKey(c.selectedRoom), photos)
		c.persist(keyRoomPhotos, c.roomPhotos)
	}

	id := c.inspectionID
	patch := models.InspectionPatch{
		RoomInspectionData: c.roomData,
		RoomPhotos:         c.roomPhotos,
	}
	c.busy = true
	c.mu.Unlock()

	if id != 0 {
		if resp := c.backend.UpdateInspection(ctx, id, patch); !resp.Success {
			c.log.Warn("room data sync failed", zap.Int("id", id), zap.String("error", resp.Error))
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if c.currentRoomIndex < len(c.selectedRooms)-1 {
		c.screen = ScreenRoomSelection
	} else {
		c.screen = ScreenDateSelector
	}
}

// NextRoom advances the traversal, opening capture for the next room,
// or moves to scheduling when the last room is done.
func (c *Controller) NextRoom() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.at(ScreenRoomInspection) {
		return
	}
	if c.currentRoomIndex < len(c.selectedRooms)-1 {
		c.currentRoomIndex++
		c.selectedRoom = c.selectedRooms[c.currentRoomIndex]
		c.screen = ScreenImageSelection
	} else {
		c.screen = ScreenDateSelector
	}
}

// PreviousRoom steps the traversal back. The previous room already has
// its photos, so the flow stays on room inspection rather than
// reopening capture; from the first room it returns to room selection.
func (c *Controller) PreviousRoom() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.at(ScreenRoomInspection) {
		return
	}
	if c.currentRoomIndex > 0 {
		c.currentRoomIndex--
		c.selectedRoom = c.selectedRooms[c.currentRoomIndex]
	} else {
		c.screen = ScreenRoomSelection
	}
}

func (c *Controller) SummaryBack() {
	c.stepTo(ScreenSummary, ScreenDateSelector)
}

func (c *Controller) EditInspectionInfo() {
	c.stepTo(ScreenSummary, ScreenDateSelector)
}

func (c *Controller) EditInspectionReport() {
	c.stepTo(ScreenSummary, ScreenRoomSelection)
}

// Submit sends the finished inspection, clears the persisted working
// data, and returns home. On failure everything is kept so the user can
// retry.
func (c *Controller) Submit(ctx context.Context) {
	c.mu.Lock()
	if !c.at(ScreenSummary) {
		c.mu.Unlock()
		return
	}
	payload := c.inspectionPayload()
	payload.RoomInspectionData = c.roomData
	payload.SelectedRooms = c.selectedRooms
	dt := c.dateTime
	payload.DateTimeData = &dt
	payload.RoomPhotos = c.roomPhotos
	payload.Status = models.StatusCompleted
	payload.SubmittedAt = c.now().UTC().Format(time.RFC3339)
	id := c.inspectionID
	c.busy = true
	c.mu.Unlock()

	var resp backend.Response[models.Inspection]
	if id != 0 {
		resp = c.backend.UpdateInspection(ctx, id, submitPatch(payload))
	} else {
		resp = c.backend.CreateInspection(ctx, payload)
	}

	c.mu.Lock()
	c.busy = false
	if !resp.Success || resp.Data == nil {
		msg := resp.Error
		if msg == "" {
			msg = "Failed to submit inspection"
		}
		c.post(NoticeError, msg)
		c.mu.Unlock()
		return
	}

	c.writer.Remove(keyInspectionData)
	c.writer.Remove(keySelectedRooms)
	c.writer.Remove(keyRoomInspectionData)
	c.writer.Remove(keyRoomPhotos)

	c.data = InspectionData{}
	c.selectedRooms = nil
	c.selectedRoom = ""
	c.currentRoomIndex = 0
	c.roomData = make(map[string]models.RoomInspectionData)
	c.roomPhotos = make(map[string][]string)
	c.dateTime = models.DateTimeData{}
	c.screen = ScreenHome
	c.post(NoticeSuccess, "Inspection submitted successfully!")
	c.mu.Unlock()

	c.Refresh(ctx)
}

func (c *Controller) DetailsBack() {
	c.stepTo(ScreenDetails, ScreenRoomSelection)
}

func (c *Controller) DetailsNext() {
	c.stepTo(ScreenDetails, ScreenHome)
}

// ViewInspection opens the detail screen for a submitted inspection.
func (c *Controller) ViewInspection(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id == 0 {
		return
	}
	c.inspectionID = id
	c.screen = ScreenDetails
}

// InspectionDetail fetches the record behind the detail screen.
func (c *Controller) InspectionDetail(ctx context.Context) (models.Inspection, bool) {
	c.mu.Lock()
	id := c.inspectionID
	c.mu.Unlock()
	if id == 0 {
		return models.Inspection{}, false
	}

	resp := c.backend.GetInspectionByID(ctx, id)
	if !resp.Success || resp.Data == nil {
		c.mu.Lock()
		c.lastErr = resp.Error
		c.mu.Unlock()
		return models.Inspection{}, false
	}
	return *resp.Data, true
}

// stepTo moves from one screen to another, ignoring stale events.
func (c *Controller) stepTo(from, to Screen) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.screen == from {
		c.screen = to
	}
}

// inspectionPayload builds the wire record from the working data.
// Caller holds c.mu.
func (c *Controller) inspectionPayload() models.Inspection {
	return models.Inspection{
		Address:         c.data.Address,
		Client:          c.data.Client,
		InspectionDate:  c.data.InspectionDate,
		InspectionTime:  c.data.InspectionTime,
		InventoryType:   c.data.InventoryType,
		LocationKey:     c.data.LocationKey,
		Bathroom:        c.data.Bathroom,
		Bedroom:         c.data.Bedroom,
		AdditionalNotes: c.data.AdditionalNotes,
	}
}

// submitPatch turns the complete payload into a partial update.
func submitPatch(insp models.Inspection) models.InspectionPatch {
	status := insp.Status
	return models.InspectionPatch{
		Address:            &insp.Address,
		Client:             &insp.Client,
		InspectionDate:     &insp.InspectionDate,
		InspectionTime:     &insp.InspectionTime,
		InventoryType:      &insp.InventoryType,
		LocationKey:        &insp.LocationKey,
		Bathroom:           &insp.Bathroom,
		Bedroom:            &insp.Bedroom,
		AdditionalNotes:    &insp.AdditionalNotes,
		Status:             &status,
		RoomInspectionData: insp.RoomInspectionData,
		SelectedRooms:      insp.SelectedRooms,
		DateTimeData:       insp.DateTimeData,
		SubmittedAt:        &insp.SubmittedAt,
		RoomPhotos:         insp.RoomPhotos,
	}
}

// --- read accessors ---

func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

func (c *Controller) Data() InspectionData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

func (c *Controller) Rooms() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.selectedRooms...)
}

func (c *Controller) CurrentRoom() (string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedRoom, c.currentRoomIndex
}

func (c *Controller) RoomData() map[string]models.RoomInspectionData {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]models.RoomInspectionData, len(c.roomData))
	for k, v := range c.roomData {
		out[k] = v
	}
	return out
}

func (c *Controller) PhotosFor(room string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.roomPhotos[room]...)
}

func (c *Controller) DateTime() models.DateTimeData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dateTime
}

func (c *Controller) Property() (PropertyForm, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.property, c.coverImage
}

func (c *Controller) InspectionID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inspectionID
}

func (c *Controller) Inspections() []models.Inspection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Inspection(nil), c.inspections...)
}

func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Notices returns every notice posted so far.
func (c *Controller) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notice(nil), c.notices...)
}

// Flush blocks until pending storage writes have been applied.
func (c *Controller) Flush() {
	c.writer.Flush()
}
