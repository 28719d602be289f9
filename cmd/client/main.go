// Package main is the interactive inspection client: a shell that signs
// in against the backend and walks the inspection capture flow, with
// progress persisted locally so an interrupted session resumes.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/digiprop/inspect/internal/backend"
	"github.com/digiprop/inspect/internal/client/session"
	"github.com/digiprop/inspect/internal/client/storage"
	"github.com/digiprop/inspect/internal/client/workflow"
)

var (
	version   string
	buildDate string
)

// promptDevice satisfies the capture interface by asking for an image
// path on stdin. An empty line cancels the capture.
type promptDevice struct {
	in *bufio.Scanner
}

func (d *promptDevice) capture(prompt string) (workflow.CaptureResult, error) {
	fmt.Print(prompt)
	if !d.in.Scan() {
		return workflow.CaptureResult{Canceled: true}, nil
	}
	path := strings.TrimSpace(d.in.Text())
	if path == "" {
		return workflow.CaptureResult{Canceled: true}, nil
	}
	return workflow.CaptureResult{URI: "file://" + path}, nil
}

func (d *promptDevice) TakePhoto(context.Context) (workflow.CaptureResult, error) {
	return d.capture("photo path> ")
}

func (d *promptDevice) PickFromLibrary(context.Context) (workflow.CaptureResult, error) {
	return d.capture("image path> ")
}

// prompt reads a single line, returning "" at EOF.
func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

// login runs the sign-in loop until a session is established or stdin
// closes. It reports false on EOF.
func login(in *bufio.Scanner, sess *session.Manager) bool {
	ctx := context.Background()
	for {
		fmt.Println("Commands: login, signup, forgot, exit")
		switch prompt(in, "auth> ") {
		case "login":
			email := prompt(in, "email: ")
			password := prompt(in, "password: ")
			if sess.Login(ctx, email, password) {
				user, _ := sess.User()
				fmt.Printf("Signed in as %s\n", user.Name)
				return true
			}
			fmt.Println("Error:", sess.Err())
		case "signup":
			name := prompt(in, "name: ")
			email := prompt(in, "email: ")
			password := prompt(in, "password: ")
			if sess.Signup(ctx, name, email, password) {
				user, _ := sess.User()
				fmt.Printf("Signed in as %s\n", user.Name)
				return true
			}
			fmt.Println("Error:", sess.Err())
		case "forgot":
			email := prompt(in, "email: ")
			if msg, ok := sess.ForgotPassword(ctx, email); ok {
				fmt.Println(msg)
				code := prompt(in, "code: ")
				if valid, ok := sess.VerifyCode(ctx, email, code); !ok || !valid {
					fmt.Println("Code rejected")
					continue
				}
				newPassword := prompt(in, "new password: ")
				if sess.ResetPassword(ctx, email, newPassword) {
					fmt.Println("Password updated, please log in")
				} else {
					fmt.Println("Error:", sess.Err())
				}
			} else {
				fmt.Println("Error:", sess.Err())
			}
		case "exit", "":
			return false
		default:
			fmt.Println("Unknown command")
		}
	}
}

// repl drives the capture workflow. The available commands depend on
// the controller's current screen.
func repl(in *bufio.Scanner, ctrl *workflow.Controller) {
	ctx := context.Background()

	help := map[workflow.Screen]string{
		workflow.ScreenHome:             "start, list, view <id>, refresh, exit",
		workflow.ScreenCreateInspection: "next, home",
		workflow.ScreenConfirmation:     "save, back",
		workflow.ScreenPropertyDetails:  "next, property, back",
		workflow.ScreenRoomSelection:    "rooms <a,b,c>, room <name>, back",
		workflow.ScreenDateSelector:     "schedule, back",
		workflow.ScreenImageSelection:   "photo, pick, back",
		workflow.ScreenRoomInspection:   "save, next, prev, back",
		workflow.ScreenSummary:          "submit, edit-info, edit-report, back",
		workflow.ScreenDetails:          "show, done, back",
	}

	for {
		screen := ctrl.Screen()
		fmt.Printf("[%s] (%s)\n", screen, help[screen])
		fmt.Print("inspect> ")
		if !in.Scan() {
			return
		}
		args := strings.Fields(strings.TrimSpace(in.Text()))
		if len(args) == 0 {
			continue
		}

		switch screen {
		case workflow.ScreenHome:
			switch args[0] {
			case "start":
				ctrl.StartInspection()
			case "list":
				for _, insp := range ctrl.Inspections() {
					fmt.Printf("#%d %s [%s] %s\n", insp.ID, insp.Address, insp.Status, insp.InspectionDate)
				}
			case "view":
				if len(args) < 2 {
					fmt.Println("Usage: view <id>")
					continue
				}
				id, err := strconv.Atoi(args[1])
				if err != nil {
					fmt.Println("Bad id:", args[1])
					continue
				}
				ctrl.ViewInspection(id)
			case "refresh":
				ctrl.Refresh(ctx)
				if msg := ctrl.Err(); msg != "" {
					fmt.Println("Error:", msg)
				}
			case "exit":
				return
			default:
				fmt.Println("Unknown command")
			}

		case workflow.ScreenCreateInspection:
			switch args[0] {
			case "next":
				ctrl.CreateInspectionNext(workflow.InspectionForm{
					Address:         prompt(in, "address: "),
					Client:          prompt(in, "client: "),
					Bedroom:         prompt(in, "bedrooms: "),
					Bathroom:        prompt(in, "bathrooms: "),
					AdditionalNotes: prompt(in, "notes: "),
				})
			case "home":
				ctrl.GoHome()
			}

		case workflow.ScreenConfirmation:
			switch args[0] {
			case "save":
				ctrl.ConfirmationSave()
			case "back":
				ctrl.ConfirmationBack()
			}

		case workflow.ScreenPropertyDetails:
			switch args[0] {
			case "next":
				ctrl.PropertyDetailsNext()
			case "property":
				ctrl.SavePropertyDetails(workflow.PropertyForm{
					Line1:        prompt(in, "address line 1: "),
					City:         prompt(in, "city: "),
					PropertyType: prompt(in, "property type: "),
					BedRooms:     prompt(in, "bedrooms: "),
					BathRooms:    prompt(in, "bathrooms: "),
				})
			case "back":
				ctrl.PropertyDetailsBack()
			}

		case workflow.ScreenRoomSelection:
			switch args[0] {
			case "rooms":
				if len(args) < 2 {
					fmt.Println("Usage: rooms <a,b,c>")
					continue
				}
				var rooms []string
				for _, r := range strings.Split(strings.Join(args[1:], " "), ",") {
					if r = strings.TrimSpace(r); r != "" {
						rooms = append(rooms, r)
					}
				}
				ctrl.SaveRoomSelection(rooms)
			case "room":
				if len(args) < 2 {
					fmt.Println("Usage: room <name>")
					continue
				}
				ctrl.SelectRoom(strings.Join(args[1:], " "))
			case "back":
				ctrl.RoomSelectionBack()
			}

		case workflow.ScreenDateSelector:
			switch args[0] {
			case "schedule":
				ctrl.SelectDateTime(ctx,
					prompt(in, "date: "),
					prompt(in, "time: "),
					prompt(in, "inspection type: "),
					prompt(in, "key location: "),
				)
			case "back":
				ctrl.DateSelectorBack()
			}

		case workflow.ScreenImageSelection:
			switch args[0] {
			case "photo":
				ctrl.TakePhoto(ctx)
			case "pick":
				ctrl.PickFromLibrary(ctx)
			case "back":
				ctrl.ImageSelectionBack()
			}

		case workflow.ScreenRoomInspection:
			switch args[0] {
			case "save":
				ctrl.SaveRoomInspection(ctx)
			case "next":
				ctrl.NextRoom()
			case "prev":
				ctrl.PreviousRoom()
			case "back":
				ctrl.RoomInspectionBack()
			}

		case workflow.ScreenSummary:
			switch args[0] {
			case "submit":
				ctrl.Submit(ctx)
			case "edit-info":
				ctrl.EditInspectionInfo()
			case "edit-report":
				ctrl.EditInspectionReport()
			case "back":
				ctrl.SummaryBack()
			}

		case workflow.ScreenDetails:
			switch args[0] {
			case "show":
				if insp, ok := ctrl.InspectionDetail(ctx); ok {
					fmt.Printf("#%d %s [%s]\n", insp.ID, insp.Address, insp.Status)
					for room, data := range insp.RoomInspectionData {
						fmt.Printf("  %s: completed=%v photos=%d\n", room, data.Completed, len(data.Photos))
					}
				} else {
					fmt.Println("Error:", ctrl.Err())
				}
			case "done":
				ctrl.DetailsNext()
			case "back":
				ctrl.DetailsBack()
			}
		}
	}
}

func main() {
	var (
		baseURL     string
		storagePath string
		showVer     bool
	)

	flag.StringVar(&baseURL, "url", "", "server base URL; empty runs against the built-in mock backend")
	flag.StringVar(&storagePath, "storage", "inspect_client.json", "path to the local state file")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Inspect Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	var api backend.Client
	if baseURL == "" {
		fmt.Println("No -url given, using the built-in mock backend")
		api = backend.NewLocalMock(zapLogger)
	} else {
		api = backend.NewHTTPClient(baseURL, &http.Client{})
	}

	store, err := storage.NewFileStore(storagePath)
	if err != nil {
		log.Fatal(err)
	}

	in := bufio.NewScanner(os.Stdin)
	sess := session.NewManager(api, zapLogger)
	if !login(in, sess) {
		return
	}

	ctrl := workflow.New(api, store, &promptDevice{in: in}, zapLogger,
		workflow.WithNotifier(func(n workflow.Notice) {
			fmt.Printf("[%s] %s\n", n.Level, n.Text)
		}))

	ctx := context.Background()
	if err := ctrl.Load(ctx); err != nil {
		zapLogger.Warn("failed to load saved state", zap.Error(err))
	}
	ctrl.Refresh(ctx)

	repl(in, ctrl)

	// Let queued writes land before exiting.
	ctrl.Flush()
	fmt.Println("Bye")
}
