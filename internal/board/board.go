// Package board implements the activity board: it renders the activity
// catalog into a page, signs participants up and removes them, and keeps a
// single transient feedback message.
//
// A Board is the context object for one page. Its document is only touched
// while holding the board's mutex, which plays the part of the browser's
// event loop; calls to the activities API happen outside the lock so a slow
// request never blocks other events on the same page.
package board

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/activity-board/internal/dom"
	"github.com/Shivanand-hulikatti/activity-board/internal/model"
)

// Element ids the page shell must provide.
const (
	ListID    = "activities-list"
	SelectID  = "activity"
	FormID    = "signup-form"
	EmailID   = "email"
	MessageID = "message"
)

// Classes produced by the board.
const (
	CardClass         = "activity-card"
	ParticipantsClass = "participants-list"
	RemoveClass       = "delete-participant"
)

const (
	DefaultMessageTimeout  = 5 * time.Second
	DefaultUnregisterPath  = "/unregister"
	noParticipantsText     = "No participants yet"
	loadFailedText         = "Failed to load activities. Please try again later."
	genericErrorText       = "An error occurred"
	signupNetworkText      = "Failed to sign up. Please try again."
	unregisterNetworkText  = "Failed to unregister. Please try again."
	unregisterSuccessTempl = "Unregistered %s from %s"
)

// API is the subset of the activities API the board consumes.
type API interface {
	ListActivities(ctx context.Context) (model.Catalog, error)
	Signup(ctx context.Context, activity, email string) (string, error)
	Unregister(ctx context.Context, activity, email string) error
}

// Timer is satisfied by *time.Timer.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc is the default.
type AfterFunc func(d time.Duration, f func()) Timer

// Options tunes a Board. The zero value is usable.
type Options struct {
	Logger         *zap.Logger
	MessageTimeout time.Duration
	// UnregisterPath is the form action of every remove control.
	UnregisterPath string
	// AfterFunc replaces time.AfterFunc, for tests.
	AfterFunc AfterFunc
}

// Board is one rendered page bound to the activities API.
type Board struct {
	mu sync.Mutex

	doc      *dom.Document
	list     *dom.Element
	selectEl *dom.Element
	form     *dom.Element
	email    *dom.Element
	message  *dom.Element

	api            API
	log            *zap.Logger
	messageTimeout time.Duration
	unregisterPath string
	afterFunc      AfterFunc

	feedback  Message
	hideTimer Timer
	showSeq   uint64
}

// New parses shell and binds the elements the board drives.
func New(shell []byte, api API, opts Options) (*Board, error) {
	doc, err := dom.Parse(bytes.NewReader(shell))
	if err != nil {
		return nil, err
	}

	b := &Board{
		doc:            doc,
		api:            api,
		log:            opts.Logger,
		messageTimeout: opts.MessageTimeout,
		unregisterPath: opts.UnregisterPath,
		afterFunc:      opts.AfterFunc,
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}
	if b.messageTimeout <= 0 {
		b.messageTimeout = DefaultMessageTimeout
	}
	if b.unregisterPath == "" {
		b.unregisterPath = DefaultUnregisterPath
	}
	if b.afterFunc == nil {
		b.afterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}

	for id, dst := range map[string]**dom.Element{
		ListID:    &b.list,
		SelectID:  &b.selectEl,
		FormID:    &b.form,
		MessageID: &b.message,
	} {
		if *dst = doc.ElementByID(id); *dst == nil {
			return nil, fmt.Errorf("page shell has no #%s element", id)
		}
	}
	b.email = b.form.Find(func(e *dom.Element) bool { return e.Attr("id") == EmailID })
	if b.email == nil {
		return nil, fmt.Errorf("#%s has no #%s field", FormID, EmailID)
	}
	if b.form.Find(func(e *dom.Element) bool { return e.Attr("id") == SelectID }) == nil {
		return nil, fmt.Errorf("#%s has no #%s field", FormID, SelectID)
	}
	return b, nil
}

// Render writes the current page.
func (b *Board) Render(w io.Writer) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.Render(w)
}

// HTML returns the current page as a string.
func (b *Board) HTML() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.String()
}

// Close stops the pending feedback timer.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.hideTimer != nil {
		b.hideTimer.Stop()
		b.hideTimer = nil
	}
}
