package status

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about file rewrites
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 FileChangeType represents the outcome of processing a file
type FileChangeType int

const (
	FileRewritten FileChangeType = iota
	FileUnchanged
	FilePlanned
	FileError
)

// 🖼️ FileChange represents the processing outcome of one file
type FileChange struct {
	Type        FileChangeType
	Path        string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogFileChange logs a file outcome with appropriate emoji and formatting
func (u *UserLogger) LogFileChange(change FileChange) {
	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileRewritten:
		action = "Rewrote"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "⟳"})
	case FileUnchanged:
		action = "Unchanged"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"})
	case FilePlanned:
		action = "Would rewrite"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "📝"})
	case FileError:
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	}

	msg := fmt.Sprintf("%s %s", action, change.Path)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	if change.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(change.Error)
		u.log.Error().Err(change.Error).Msg(msg) // Also log to zerolog for debugging
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg)
	}
}

// 📊 LogRunChange logs a change to the overall run
func (u *UserLogger) LogRunChange(description string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"})
	printer.Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
	} else {
		if err != nil {
			pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
			pterm.Error.Println(err)
			u.log.Error().Err(err).Msg(description)
		} else {
			pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
			u.log.Warn().Msg(description)
		}
	}
}
