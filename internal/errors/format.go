//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/terassyi/gdvm/internal/i18n"
)

// Formatter formats errors for CLI output.
type Formatter struct {
	NoColor bool
	Writer  io.Writer

	errorColor   *color.Color
	codeColor    *color.Color
	fieldColor   *color.Color
	hintColor    *color.Color
	expectColor  *color.Color
	gotColor     *color.Color
	dimColor     *color.Color
}

// NewFormatter creates a new Formatter.
func NewFormatter(w io.Writer, noColor bool) *Formatter {
	if noColor {
		color.NoColor = true
	}

	return &Formatter{
		NoColor:     noColor,
		Writer:      w,
		errorColor:  color.New(color.FgRed, color.Bold),
		codeColor:   color.New(color.FgRed),
		fieldColor:  color.New(color.FgCyan),
		hintColor:   color.New(color.FgGreen),
		expectColor: color.New(color.FgYellow),
		gotColor:    color.New(color.FgRed),
		dimColor:    color.New(color.FgHiBlack),
	}
}

func (f *Formatter) formatHeader(sb *strings.Builder, code Code, message string) {
	sb.WriteString(f.errorColor.Sprint(i18n.T("format.error_label")))
	if code != "" {
		sb.WriteString(" ")
		sb.WriteString(f.codeColor.Sprintf("[%s]", code))
	}
	sb.WriteString(f.errorColor.Sprint(": "))
	sb.WriteString(message)
	sb.WriteString("\n")
}

func (f *Formatter) field(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	sb.WriteString("  ")
	sb.WriteString(f.dimColor.Sprint(label))
	sb.WriteString(f.fieldColor.Sprint(value))
	sb.WriteString("\n")
}

func (f *Formatter) hint(sb *strings.Builder, hint string) {
	if hint == "" {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(f.hintColor.Sprint(i18n.T("format.hint_prefix")))
	lines := strings.Split(hint, "\n")
	sb.WriteString(lines[0])
	sb.WriteString("\n")
	for _, line := range lines[1:] {
		sb.WriteString("      ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

func (f *Formatter) cause(sb *strings.Builder, cause error) {
	if cause == nil {
		return
	}
	sb.WriteString("\n  ")
	sb.WriteString(f.dimColor.Sprint(i18n.T("format.cause_prefix")))
	sb.WriteString(cause.Error())
	sb.WriteString("\n")
}

// Format formats an error for CLI display.
func (f *Formatter) Format(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	var verErr *VersionNotFoundError
	var multiErr *MultipleVersionsFoundError
	var invVerErr *InvalidVersionStringError
	var noDefErr *NoDefaultError
	var projErr *ProjectVersionMismatchError
	var platErr *UnsupportedPlatformError
	var archErr *UnsupportedArchError
	var binURLErr *MissingBinaryURLError
	var checksumErr *ChecksumMismatchError
	var hashLenErr *InvalidHashLengthError
	var dlErr *DownloadFailedError
	var symErr *SymlinkPrivilegeError
	var notFoundErr *NotFoundError
	var rateErr *RateLimitedError
	var ghErr *GithubAPIError
	var cfgErr *ConfigError
	var lockErr *StateLockedError
	var baseErr *Error

	switch {
	case errors.As(err, &verErr):
		f.formatHeader(&sb, verErr.Base.Code, verErr.Base.Message)
		f.field(&sb, "Requested: ", verErr.Requested)
		f.hint(&sb, verErr.Base.Hint)
	case errors.As(err, &multiErr):
		f.formatHeader(&sb, multiErr.Base.Code, multiErr.Base.Message)
		f.field(&sb, "Requested: ", multiErr.Requested)
		f.field(&sb, "Matches:   ", strings.Join(multiErr.Matches, ", "))
		f.hint(&sb, multiErr.Base.Hint)
	case errors.As(err, &invVerErr):
		f.formatHeader(&sb, invVerErr.Base.Code, invVerErr.Base.Message)
		f.hint(&sb, invVerErr.Base.Hint)
	case errors.As(err, &noDefErr):
		f.formatHeader(&sb, noDefErr.Base.Code, noDefErr.Base.Message)
		f.hint(&sb, noDefErr.Base.Hint)
	case errors.As(err, &projErr):
		f.formatHeader(&sb, projErr.Base.Code, projErr.Base.Message)
		f.field(&sb, "Project:   ", projErr.ProjectPath)
		f.hint(&sb, projErr.Base.Hint)
	case errors.As(err, &platErr):
		f.formatHeader(&sb, platErr.Base.Code, platErr.Base.Message)
	case errors.As(err, &archErr):
		f.formatHeader(&sb, archErr.Base.Code, archErr.Base.Message)
	case errors.As(err, &binURLErr):
		f.formatHeader(&sb, binURLErr.Base.Code, binURLErr.Base.Message)
	case errors.As(err, &checksumErr):
		f.formatHeader(&sb, checksumErr.Base.Code, checksumErr.Base.Message)
		f.field(&sb, "URL:      ", checksumErr.URL)
		sb.WriteString("\n")
		sb.WriteString("  ")
		sb.WriteString(f.dimColor.Sprint("Expected: "))
		sb.WriteString(f.expectColor.Sprint(checksumErr.Expected))
		sb.WriteString("\n  ")
		sb.WriteString(f.dimColor.Sprint("Got:      "))
		sb.WriteString(f.gotColor.Sprint(checksumErr.Got))
		sb.WriteString("\n")
		f.hint(&sb, checksumErr.Base.Hint)
	case errors.As(err, &hashLenErr):
		f.formatHeader(&sb, hashLenErr.Base.Code, hashLenErr.Base.Message)
	case errors.As(err, &dlErr):
		f.formatHeader(&sb, dlErr.Base.Code, dlErr.Base.Message)
		f.field(&sb, "URL: ", dlErr.URL)
		f.cause(&sb, dlErr.Base.Cause)
	case errors.As(err, &symErr):
		f.formatHeader(&sb, symErr.Base.Code, symErr.Base.Message)
		f.field(&sb, "Path: ", symErr.Path)
		f.hint(&sb, symErr.Base.Hint)
	case errors.As(err, &notFoundErr):
		f.formatHeader(&sb, notFoundErr.Base.Code, notFoundErr.Base.Message)
		f.field(&sb, "URL: ", notFoundErr.URL)
	case errors.As(err, &rateErr):
		f.formatHeader(&sb, rateErr.Base.Code, rateErr.Base.Message)
		f.hint(&sb, rateErr.Base.Hint)
	case errors.As(err, &ghErr):
		f.formatHeader(&sb, ghErr.Base.Code, ghErr.Base.Message)
		f.field(&sb, "URL: ", ghErr.URL)
	case errors.As(err, &cfgErr):
		f.formatHeader(&sb, cfgErr.Base.Code, cfgErr.Base.Message)
		f.field(&sb, "File: ", cfgErr.File)
		f.field(&sb, "Key:  ", cfgErr.Key)
		f.cause(&sb, cfgErr.Base.Cause)
	case errors.As(err, &lockErr):
		f.formatHeader(&sb, lockErr.Base.Code, lockErr.Base.Message)
		f.hint(&sb, lockErr.Base.Hint)
	case errors.As(err, &baseErr):
		f.formatHeader(&sb, baseErr.Code, baseErr.Message)
		f.cause(&sb, baseErr.Cause)
		f.hint(&sb, baseErr.Hint)
	default:
		sb.WriteString(f.errorColor.Sprint(i18n.T("format.error_label") + ": "))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatJSON formats an error as JSON for machine-readable output.
func (f *Formatter) FormatJSON(err error) ([]byte, error) {
	if err == nil {
		return nil, nil
	}
	var baseErr *Error
	if errors.As(err, &baseErr) {
		return json.MarshalIndent(baseErr, "", "  ")
	}
	return json.MarshalIndent(map[string]string{"error": err.Error()}, "", "  ")
}

// Print writes the formatted error to the Formatter's writer.
func (f *Formatter) Print(err error) {
	fmt.Fprint(f.Writer, f.Format(err))
}

// Warnf writes a formatted, non-fatal warning to the Formatter's writer
// (spec §6/§7: registry-refresh failures with usable cached data,
// project/pin mismatches, and malformed project-file hints all surface
// this way rather than aborting the operation).
func (f *Formatter) Warnf(format string, args ...any) {
	fmt.Fprint(f.Writer, f.expectColor.Sprint(i18n.T("format.warning_prefix")))
	fmt.Fprintf(f.Writer, format, args...)
	fmt.Fprintln(f.Writer)
}
