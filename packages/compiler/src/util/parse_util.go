package util

import (
	"fmt"
)

// ParseSourceFile represents a template source file
type ParseSourceFile struct {
	Content string
	URL     string
}

// NewParseSourceFile creates a new ParseSourceFile
func NewParseSourceFile(content, url string) *ParseSourceFile {
	return &ParseSourceFile{Content: content, URL: url}
}

// ParseLocation represents a location in the source file
type ParseLocation struct {
	File   *ParseSourceFile
	Offset int
	Line   int
	Col    int
}

// NewParseLocation creates a new ParseLocation
func NewParseLocation(file *ParseSourceFile, offset, line, col int) *ParseLocation {
	return &ParseLocation{File: file, Offset: offset, Line: line, Col: col}
}

// String returns a string representation of the location
func (p *ParseLocation) String() string {
	url := ""
	if p.File != nil {
		url = p.File.URL
	}
	if p.Offset >= 0 {
		return fmt.Sprintf("%s@%d:%d", url, p.Line, p.Col)
	}
	return url
}

// ParseSourceSpan represents a span of source code
type ParseSourceSpan struct {
	Start     *ParseLocation
	End       *ParseLocation
	FullStart *ParseLocation
	Details   string
}

// NewParseSourceSpan creates a new ParseSourceSpan. A nil fullStart defaults to start.
func NewParseSourceSpan(start, end, fullStart *ParseLocation, details string) *ParseSourceSpan {
	if fullStart == nil {
		fullStart = start
	}
	return &ParseSourceSpan{Start: start, End: end, FullStart: fullStart, Details: details}
}

// String returns the source code in this span
func (p *ParseSourceSpan) String() string {
	if p == nil || p.Start == nil || p.End == nil || p.Start.File == nil {
		return ""
	}
	content := p.Start.File.Content
	if p.Start.Offset < 0 || p.End.Offset > len(content) || p.Start.Offset > p.End.Offset {
		return ""
	}
	return content[p.Start.Offset:p.End.Offset]
}

// ParseErrorLevel represents the level of a parse error
type ParseErrorLevel int

const (
	ParseErrorLevelWarning ParseErrorLevel = iota
	ParseErrorLevelError
)

// ParseError is an error or a warning attached to a source span
type ParseError struct {
	Span  *ParseSourceSpan
	Msg   string
	Level ParseErrorLevel
}

// NewParseError creates a new ParseError
func NewParseError(span *ParseSourceSpan, msg string) *ParseError {
	return &ParseError{Span: span, Msg: msg, Level: ParseErrorLevelError}
}

// NewParseWarning creates a new warning-level ParseError
func NewParseWarning(span *ParseSourceSpan, msg string) *ParseError {
	return &ParseError{Span: span, Msg: msg, Level: ParseErrorLevelWarning}
}

// Error implements the error interface
func (p *ParseError) Error() string {
	return p.String()
}

// String returns a string representation of the error
func (p *ParseError) String() string {
	if p.Span == nil || p.Span.Start == nil {
		return p.Msg
	}
	details := ""
	if p.Span.Details != "" {
		details = ", " + p.Span.Details
	}
	return fmt.Sprintf("%s: %s%s", p.Msg, p.Span.Start, details)
}
