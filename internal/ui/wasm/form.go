//go:build js && wasm

package wasm

import (
	"syscall/js"

	"github.com/Its-donkey/webstay/internal/ui/components"
	"github.com/Its-donkey/webstay/internal/ui/state"
)

var formHandlers []listener

// RenderSignupForm rebuilds the form from state and rebinds its listeners.
func RenderSignupForm() {
	container := Document.Call("getElementById", components.FormContainerID)
	if !container.Truthy() {
		return
	}

	focus := captureFocusSnapshot()
	releaseFormHandlers()

	container.Set("innerHTML", components.Render(components.SignupForm(components.SignupView{
		Printer: submitter.Printer,
		Rules:   state.Rules,
		Form:    state.Signup,
	})))

	bindFormEvents()
	restoreFocusSnapshot(focus)
}

func scheduleRender() {
	var fn js.Func
	fn = js.FuncOf(func(js.Value, []js.Value) any {
		RenderSignupForm()
		fn.Release()
		return nil
	})
	js.Global().Call("setTimeout", fn, 0)
}

func bindFormEvents() {
	inputs := Document.Call("querySelectorAll", "#signup-form input")
	forEachNode(inputs, func(node js.Value) {
		field, ok := fieldForInput(node.Get("id").String())
		if !ok || node.Get("type").String() == "hidden" {
			return
		}
		addFormHandler(node, "input", func(this js.Value, _ []js.Value) any {
			state.Rules.SetField(&state.Signup, field, this.Get("value").String())
			RenderSignupForm()
			return nil
		})
	})

	form := Document.Call("getElementById", "signup-form")
	addFormHandler(form, "submit", func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			args[0].Call("preventDefault")
		}
		submit()
		return nil
	})
}

func addFormHandler(node js.Value, event string, handler func(js.Value, []js.Value) any) {
	if !node.Truthy() {
		return
	}
	formHandlers = append(formHandlers, listen(node, event, handler))
}

func releaseFormHandlers() {
	for _, l := range formHandlers {
		l.release()
	}
	formHandlers = formHandlers[:0]
}

func forEachNode(list js.Value, fn func(js.Value)) {
	if !list.Truthy() {
		return
	}
	length := list.Get("length").Int()
	for i := 0; i < length; i++ {
		fn(list.Index(i))
	}
}

type focusSnapshot struct {
	ID    string
	Start int
	End   int
}

func captureFocusSnapshot() focusSnapshot {
	active := Document.Get("activeElement")
	if !active.Truthy() {
		return focusSnapshot{Start: -1, End: -1}
	}
	idValue := active.Get("id")
	if idValue.Type() != js.TypeString {
		return focusSnapshot{Start: -1, End: -1}
	}
	snap := focusSnapshot{ID: idValue.String(), Start: -1, End: -1}
	if !restoresSelection(active.Get("type").String()) {
		return snap
	}
	if start := active.Get("selectionStart"); start.Type() == js.TypeNumber {
		snap.Start = start.Int()
	}
	if end := active.Get("selectionEnd"); end.Type() == js.TypeNumber {
		snap.End = end.Int()
	}
	return snap
}

func restoreFocusSnapshot(snap focusSnapshot) {
	if snap.ID == "" {
		return
	}
	target := Document.Call("getElementById", snap.ID)
	if !target.Truthy() {
		return
	}
	target.Call("focus")
	if snap.Start >= 0 && snap.End >= 0 && restoresSelection(target.Get("type").String()) {
		target.Call("setSelectionRange", snap.Start, snap.End)
	}
}
