// Package workflow drives the multi-step inspection capture flow: a
// screen state machine whose working data is written through to local
// storage on every change, so a killed client resumes where it left off.
package workflow

// Screen identifies the active step of the client UI.
type Screen string

const (
	ScreenHome             Screen = "home"
	ScreenProfile          Screen = "profile"
	ScreenCreateInspection Screen = "createInspection"
	ScreenConfirmation     Screen = "inspectionConfirmation"
	ScreenPropertyDetails  Screen = "propertyDetails"
	ScreenRoomSelection    Screen = "roomSelection"
	ScreenDateSelector     Screen = "dateSelector"
	ScreenImageSelection   Screen = "imageSelection"
	ScreenRoomInspection   Screen = "roomInspection"
	ScreenSummary          Screen = "inspectionSummary"
	ScreenDetails          Screen = "inspectionDetails"
)
