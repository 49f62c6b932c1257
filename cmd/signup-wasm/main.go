//go:build js && wasm

package main

import "github.com/Its-donkey/webstay/internal/ui/wasm"

func main() {
	wasm.RunApp()
}
