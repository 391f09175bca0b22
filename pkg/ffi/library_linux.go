//go:build linux

package ffi

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ebitengine/purego"
)

// library holds the bound entry points of one loaded libhyprbind.
type library struct {
	handle uintptr

	setDispatcher func(fn uintptr)

	backendCreate    func() uint64
	backendEnterLoop func(backend uint64)
	backendAddTimer  func(backend uint64, timeoutMs uint32, token uint64)
	backendAddIdle   func(backend uint64, token uint64)
	backendDestroy   func(backend uint64)

	windowCreate  func(p *cWindowParams) uint64
	windowRoot    func(window uint64) uint64
	windowOpen    func(window uint64)
	windowClose   func(window uint64)
	windowSize    func(window uint64, width, height *int32)
	windowDestroy func(window uint64)

	elementDestroy         func(h uint64)
	elementAddChild        func(parent, child uint64)
	elementRemoveChild     func(parent, child uint64)
	elementClearChildren   func(parent uint64)
	elementSetSize         func(h uint64, width, height int32)
	elementSetMargin       func(h uint64, top, right, bottom, left int32)
	elementSetGrow         func(h uint64, horizontal, vertical uint8)
	elementSetAlign        func(h uint64, align int32)
	elementSetPositionMode func(h uint64, mode int32)
	elementSetAbsolutePos  func(h uint64, x, y int32)
	listen                 func(h uint64, kind int32, token uint64)
	unlisten               func(h uint64, kind int32)
	buttonCreate           func(p *cButtonParams) uint64
	textCreate             func(p *cTextParams) uint64
	rectangleCreate        func(p *cRectangleParams) uint64
	lineCreate             func(p *cLineParams) uint64
	checkboxCreate         func(p *cCheckboxParams) uint64
	textboxCreate          func(p *cTextboxParams) uint64
	scrollAreaCreate       func(p *cScrollAreaParams) uint64
	columnLayoutCreate     func(p *cLayoutParams) uint64
	rowLayoutCreate        func(p *cLayoutParams) uint64
	buttonSetLabel         func(h uint64, label string)
	textSetContent         func(h uint64, content string)
	textSetFontSize        func(h uint64, size int32)
	textboxGetText         func(h uint64) *byte
	textboxSetText         func(h uint64, text string)
	checkboxGetChecked     func(h uint64) uint8
	checkboxSetChecked     func(h uint64, checked uint8)
	scrollAreaGetOffset    func(h uint64, x, y *int32)
	scrollAreaSetScroll    func(h uint64, x, y int32)
}

// symbols maps every C entry point to the field it is bound to.
func (l *library) symbols() map[string]any {
	return map[string]any{
		"hb_set_dispatcher": &l.setDispatcher,

		"hb_backend_create":     &l.backendCreate,
		"hb_backend_enter_loop": &l.backendEnterLoop,
		"hb_backend_add_timer":  &l.backendAddTimer,
		"hb_backend_add_idle":   &l.backendAddIdle,
		"hb_backend_destroy":    &l.backendDestroy,

		"hb_window_create":  &l.windowCreate,
		"hb_window_root":    &l.windowRoot,
		"hb_window_open":    &l.windowOpen,
		"hb_window_close":   &l.windowClose,
		"hb_window_size":    &l.windowSize,
		"hb_window_destroy": &l.windowDestroy,

		"hb_element_destroy":               &l.elementDestroy,
		"hb_element_add_child":             &l.elementAddChild,
		"hb_element_remove_child":          &l.elementRemoveChild,
		"hb_element_clear_children":        &l.elementClearChildren,
		"hb_element_set_size":              &l.elementSetSize,
		"hb_element_set_margin":            &l.elementSetMargin,
		"hb_element_set_grow":              &l.elementSetGrow,
		"hb_element_set_align":             &l.elementSetAlign,
		"hb_element_set_position_mode":     &l.elementSetPositionMode,
		"hb_element_set_absolute_position": &l.elementSetAbsolutePos,
		"hb_listen":                        &l.listen,
		"hb_unlisten":                      &l.unlisten,

		"hb_button_create":        &l.buttonCreate,
		"hb_text_create":          &l.textCreate,
		"hb_rectangle_create":     &l.rectangleCreate,
		"hb_line_create":          &l.lineCreate,
		"hb_checkbox_create":      &l.checkboxCreate,
		"hb_textbox_create":       &l.textboxCreate,
		"hb_scroll_area_create":   &l.scrollAreaCreate,
		"hb_column_layout_create": &l.columnLayoutCreate,
		"hb_row_layout_create":    &l.rowLayoutCreate,

		"hb_button_set_label":       &l.buttonSetLabel,
		"hb_text_set_content":       &l.textSetContent,
		"hb_text_set_font_size":     &l.textSetFontSize,
		"hb_textbox_get_text":       &l.textboxGetText,
		"hb_textbox_set_text":       &l.textboxSetText,
		"hb_checkbox_get_checked":   &l.checkboxGetChecked,
		"hb_checkbox_set_checked":   &l.checkboxSetChecked,
		"hb_scroll_area_get_offset": &l.scrollAreaGetOffset,
		"hb_scroll_area_set_scroll": &l.scrollAreaSetScroll,
	}
}

// loadLibrary opens path and binds every entry point. A library missing any
// symbol is closed again and reported with the full list of missing names.
func loadLibrary(path string) (*library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	l := &library{handle: handle}
	var missing []string
	for name, fptr := range l.symbols() {
		sym, err := purego.Dlsym(handle, name)
		if err != nil || sym == 0 {
			missing = append(missing, name)
			continue
		}
		purego.RegisterFunc(fptr, sym)
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		_ = purego.Dlclose(handle)
		return nil, fmt.Errorf("%s: missing symbols %s", path, strings.Join(missing, ", "))
	}
	return l, nil
}

func (l *library) close() error {
	return purego.Dlclose(l.handle)
}
