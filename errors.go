package doccast

import "errors"

// ErrInvalidInput is returned when a conversion request carries no markup.
var ErrInvalidInput = errors.New("doccast: invalid input")

// ErrInputTooLarge is returned when markup exceeds Config.MaxInputSize.
var ErrInputTooLarge = errors.New("doccast: input too large")

// ErrUnsupportedFile is returned by ConvertFile for file types the upstream
// DOCX-to-markup step does not produce.
var ErrUnsupportedFile = errors.New("doccast: unsupported file type")
