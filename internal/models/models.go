// Package models defines the core data structures shared between the
// inspection backend, the REST layer, and the client-side workflow.
package models

import "time"

// InspectionStatus enumerates the lifecycle states of an inspection.
type InspectionStatus string

const (
	// StatusCompleted marks a finished inspection.
	StatusCompleted InspectionStatus = "completed"
	// StatusInProgress marks an inspection still being captured.
	StatusInProgress InspectionStatus = "in progress"
	// StatusPending marks an inspection not yet started.
	StatusPending InspectionStatus = "pending"
)

// PhotoSource enumerates where a captured image came from.
type PhotoSource string

const (
	// SourceCamera means the photo was taken with the device camera.
	SourceCamera PhotoSource = "camera"
	// SourceGallery means the photo was picked from the media library.
	SourceGallery PhotoSource = "gallery"
)

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Name is the display name chosen at signup.
	Name string `json:"name"`
	// Email is the login email, matched exactly and case-sensitively.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`
}

// Profile is a User stripped of credential material, safe to return
// from the API.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile returns the credential-free view of the user.
func (u User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email}
}

// VerificationCode is a short-lived password-reset code bound to an email.
// At most one code is active per email; storing a new one replaces it.
type VerificationCode struct {
	// Email the code was issued for.
	Email string `json:"email"`
	// Code is the 6-digit numeric code.
	Code string `json:"code"`
	// ExpiresAt is the absolute expiry time.
	ExpiresAt time.Time `json:"expiresAt"`
}

// Photo is a single captured image reference. URI points at the local
// device file; URL is filled once the image has been uploaded.
type Photo struct {
	ID        string      `json:"id"`
	URI       string      `json:"uri"`
	URL       string      `json:"url,omitempty"`
	Timestamp string      `json:"timestamp"`
	RoomName  string      `json:"roomName,omitempty"`
	Source    PhotoSource `json:"source,omitempty"`
}

// RoomInspectionData is the per-room result accumulated while walking
// the selected rooms.
type RoomInspectionData struct {
	Completed bool `json:"completed"`
	// Timestamp is an ISO-8601 string recorded when the room was saved.
	Timestamp string   `json:"timestamp"`
	Photos    []string `json:"photos"`
	Notes     string   `json:"notes,omitempty"`
	Condition string   `json:"condition,omitempty"`
}

// DateTimeData is the scheduling block captured on the date-selector step.
type DateTimeData struct {
	Date           string `json:"date"`
	Time           string `json:"time"`
	InspectionType string `json:"inspectionType"`
	KeyLocation    string `json:"keyLocation"`
}

// Inspection is the central record of a property inspection.
type Inspection struct {
	// ID is a monotonically increasing integer assigned on creation.
	ID              int              `json:"id"`
	Address         string           `json:"address"`
	Client          string           `json:"client"`
	InspectionDate  string           `json:"inspectionDate"`
	InspectionTime  string           `json:"inspectionTime"`
	InventoryType   string           `json:"inventoryType"`
	LocationKey     string           `json:"locationKey"`
	Bathroom        string           `json:"bathroom"`
	Bedroom         string           `json:"bedroom"`
	AdditionalNotes string           `json:"additionalNotes"`
	Status          InspectionStatus `json:"status"`
	AssignedTo      string           `json:"assignedTo,omitempty"`
	CreatedAt       string           `json:"createdAt"`
	UpdatedAt       string           `json:"updatedAt,omitempty"`
	// RoomInspectionData maps room name to the captured result.
	RoomInspectionData map[string]RoomInspectionData `json:"roomInspectionData,omitempty"`
	// SelectedRooms preserves the traversal order chosen by the user.
	SelectedRooms []string      `json:"selectedRooms,omitempty"`
	DateTimeData  *DateTimeData `json:"dateTimeData,omitempty"`
	SubmittedAt   string        `json:"submittedAt,omitempty"`
	// RoomPhotos mirrors the client's room-name → image references map.
	RoomPhotos map[string][]string `json:"roomPhotos,omitempty"`
}

// InspectionPatch is a partial update to an Inspection. Nil fields are
// left untouched; non-nil fields overwrite, matching the shallow-merge
// semantics of the wire contract.
type InspectionPatch struct {
	Address            *string                       `json:"address,omitempty"`
	Client             *string                       `json:"client,omitempty"`
	InspectionDate     *string                       `json:"inspectionDate,omitempty"`
	InspectionTime     *string                       `json:"inspectionTime,omitempty"`
	InventoryType      *string                       `json:"inventoryType,omitempty"`
	LocationKey        *string                       `json:"locationKey,omitempty"`
	Bathroom           *string                       `json:"bathroom,omitempty"`
	Bedroom            *string                       `json:"bedroom,omitempty"`
	AdditionalNotes    *string                       `json:"additionalNotes,omitempty"`
	Status             *InspectionStatus             `json:"status,omitempty"`
	AssignedTo         *string                       `json:"assignedTo,omitempty"`
	RoomInspectionData map[string]RoomInspectionData `json:"roomInspectionData,omitempty"`
	SelectedRooms      []string                      `json:"selectedRooms,omitempty"`
	DateTimeData       *DateTimeData                 `json:"dateTimeData,omitempty"`
	SubmittedAt        *string                       `json:"submittedAt,omitempty"`
	RoomPhotos         map[string][]string           `json:"roomPhotos,omitempty"`
}

// Apply shallow-merges the patch onto the inspection.
func (p InspectionPatch) Apply(insp *Inspection) {
	if p.Address != nil {
		insp.Address = *p.Address
	}
	if p.Client != nil {
		insp.Client = *p.Client
	}
	if p.InspectionDate != nil {
		insp.InspectionDate = *p.InspectionDate
	}
	if p.InspectionTime != nil {
		insp.InspectionTime = *p.InspectionTime
	}
	if p.InventoryType != nil {
		insp.InventoryType = *p.InventoryType
	}
	if p.LocationKey != nil {
		insp.LocationKey = *p.LocationKey
	}
	if p.Bathroom != nil {
		insp.Bathroom = *p.Bathroom
	}
	if p.Bedroom != nil {
		insp.Bedroom = *p.Bedroom
	}
	if p.AdditionalNotes != nil {
		insp.AdditionalNotes = *p.AdditionalNotes
	}
	if p.Status != nil {
		insp.Status = *p.Status
	}
	if p.AssignedTo != nil {
		insp.AssignedTo = *p.AssignedTo
	}
	if p.RoomInspectionData != nil {
		insp.RoomInspectionData = p.RoomInspectionData
	}
	if p.SelectedRooms != nil {
		insp.SelectedRooms = p.SelectedRooms
	}
	if p.DateTimeData != nil {
		insp.DateTimeData = p.DateTimeData
	}
	if p.SubmittedAt != nil {
		insp.SubmittedAt = *p.SubmittedAt
	}
	if p.RoomPhotos != nil {
		insp.RoomPhotos = p.RoomPhotos
	}
}

// Property is a standalone property record managed alongside inspections.
type Property struct {
	ID           int    `json:"id"`
	Address      string `json:"address"`
	Bedrooms     string `json:"bedrooms"`
	Bathrooms    string `json:"bathrooms"`
	PropertyType string `json:"propertyType"`
	Image        string `json:"image,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// PropertyPatch is a partial update to a Property.
type PropertyPatch struct {
	Address      *string `json:"address,omitempty"`
	Bedrooms     *string `json:"bedrooms,omitempty"`
	Bathrooms    *string `json:"bathrooms,omitempty"`
	PropertyType *string `json:"propertyType,omitempty"`
	Image        *string `json:"image,omitempty"`
}

// Apply shallow-merges the patch onto the property.
func (p PropertyPatch) Apply(prop *Property) {
	if p.Address != nil {
		prop.Address = *p.Address
	}
	if p.Bedrooms != nil {
		prop.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		prop.Bathrooms = *p.Bathrooms
	}
	if p.PropertyType != nil {
		prop.PropertyType = *p.PropertyType
	}
	if p.Image != nil {
		prop.Image = *p.Image
	}
}

// ImageMetadata accompanies an image upload.
type ImageMetadata struct {
	RoomName  string      `json:"roomName,omitempty"`
	Timestamp string      `json:"timestamp"`
	Source    PhotoSource `json:"source,omitempty"`
}

// UploadedImage is the result of a successful image upload.
type UploadedImage struct {
	ID       string        `json:"id"`
	URL      string        `json:"url"`
	Metadata ImageMetadata `json:"metadata"`
}
