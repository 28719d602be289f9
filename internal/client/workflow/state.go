package workflow

import "regexp"

// Storage keys for the in-progress inspection. The client writes these
// through on every change and reloads them on startup.
const (
	keyInspectionData     = "inspectionData"
	keySelectedRooms      = "selectedRooms"
	keyRoomInspectionData = "roomInspectionData"
	keyRoomPhotos         = "roomPhotos"
	keyPropertyData       = "propertyData"
	keyPropertyCoverImage = "propertyCoverImage"
)

// defaultAddress is substituted when a resumed inspection has no
// address recorded.
const defaultAddress = "Raumoth Eduardoland NewBenny,lincoln grove Park KR"

// defaultRooms is the initial room selection before the user picks.
func defaultRooms() []string {
	return []string{"Schedule of Condition", "EV Charger"}
}

var whitespace = regexp.MustCompile(`\s+`)

// roomPhotosKey derives the per-room photo key, e.g.
// "roomPhotos_Living_Room".
func roomPhotosKey(room string) string {
	return keyRoomPhotos + "_" + whitespace.ReplaceAllString(room, "_")
}

// InspectionData is the working record built up across the wizard
// steps, persisted under keyInspectionData.
type InspectionData struct {
	Address         string `json:"address"`
	Client          string `json:"client"`
	InspectionDate  string `json:"inspectionDate"`
	InspectionTime  string `json:"inspectionTime"`
	InventoryType   string `json:"inventoryType"`
	LocationKey     string `json:"locationKey"`
	Bathroom        string `json:"bathroom"`
	Bedroom         string `json:"bedroom"`
	AdditionalNotes string `json:"additionalNotes"`
}

// InspectionForm is what the create-inspection step captures. Scheduling
// fields (inventory type, key location) are set later on the date
// selector and are deliberately absent.
type InspectionForm struct {
	Address         string
	Client          string
	InspectionDate  string
	InspectionTime  string
	Bathroom        string
	Bedroom         string
	AdditionalNotes string
}

// PropertyForm is the property-details step form, persisted under
// keyPropertyData.
type PropertyForm struct {
	Line1           string `json:"line1"`
	Line2           string `json:"line2"`
	City            string `json:"city"`
	State           string `json:"state"`
	Country         string `json:"country"`
	PostalCode      string `json:"postalCode"`
	Reference       string `json:"reference"`
	Client          string `json:"client"`
	PropertyType    string `json:"propertyType"`
	Furnishing      string `json:"furnishing"`
	BedRooms        string `json:"bedRooms"`
	BathRooms       string `json:"bathRooms"`
	CarAge          string `json:"carAge"`
	Parking         string `json:"parking"`
	AdditionalNotes string `json:"additionalNotes"`
	Date            string `json:"date"`
}
