package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/gridiron"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type sourceSet struct {
	Sources []gridiron.Source `validate:"min=1,unique=Class,dive"`
}

type fileSource struct {
	Class string `validate:"required,alphanum"`
	Path  string `validate:"required,file"`
}

type fileSet struct {
	Files []fileSource `validate:"min=1,unique=Class,dive"`
}

// resolveSources turns --source values into sources. No values selects
// every default classification.
func resolveSources(args []string) ([]gridiron.Source, error) {
	if len(args) == 0 {
		return gridiron.DefaultSources(), nil
	}

	sources := make([]gridiron.Source, 0, len(args))
	for _, arg := range args {
		src, err := gridiron.ParseSource(arg)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	if err := validate.Struct(sourceSet{Sources: sources}); err != nil {
		return nil, validationError(err)
	}
	return sources, nil
}

// resolveFiles turns CLASS=FILE arguments into sources read from disk.
func resolveFiles(args []string) ([]gridiron.Source, error) {
	files := make([]fileSource, 0, len(args))
	for _, arg := range args {
		if !strings.Contains(arg, "=") {
			return nil, gridiron.Errorf(gridiron.EINVALID, "source %q: expected CLASS=FILE", arg)
		}
		src, err := gridiron.ParseSource(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, fileSource{Class: src.Class, Path: src.URL})
	}

	if err := validate.Struct(fileSet{Files: files}); err != nil {
		return nil, validationError(err)
	}

	sources := make([]gridiron.Source, 0, len(files))
	for _, f := range files {
		sources = append(sources, gridiron.Source{Class: f.Class, URL: f.Path})
	}
	return sources, nil
}

// validationError converts the first validator failure into an EINVALID
// error with a readable message.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return gridiron.Errorf(gridiron.EINVALID, "invalid sources: %v", err)
	}

	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "min":
		msg = "at least one source required"
	case "unique":
		msg = "each classification may appear only once"
	case "required":
		msg = fmt.Sprintf("%s required", strings.ToLower(fe.Field()))
	case "alphanum":
		msg = fmt.Sprintf("classification %q must be alphanumeric", fe.Value())
	case "url":
		msg = fmt.Sprintf("location %q is not a URL", fe.Value())
	case "file":
		msg = fmt.Sprintf("file %q does not exist", fe.Value())
	default:
		msg = fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}
	return gridiron.Errorf(gridiron.EINVALID, "invalid source: %s", msg)
}
