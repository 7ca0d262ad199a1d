package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"

	"showtimes/proj/internal/clients/kvikmyndir"
	"showtimes/proj/internal/services/movies"
)

func (app *Application) extractIDParam(w http.ResponseWriter, r *http.Request) (id int, extracted bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		app.Http.BadRequest(w, r, "invalid cinema ID")
		return 0, false
	}
	if id < 1 {
		app.Http.BadRequest(w, r, "id must be greater than zero")
		return 0, false
	}
	return id, true
}

// extractObjectID reads the upstream movie _id from the {id} path segment.
func (app *Application) extractObjectID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		app.Http.BadRequest(w, r, "movie id is required")
		return "", false
	}
	return id, true
}

// handleUpstreamError maps listing failures: the API rejecting us is a bad
// gateway, a caller that went away gets nothing back.
func (app *Application) handleUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	log := app.Http.setupLogPerReq(r)
	var (
		authErr  *kvikmyndir.AuthError
		fetchErr *kvikmyndir.FetchError
	)
	switch {
	case errors.Is(err, context.Canceled):
		log.Info("request canceled by client")
	case errors.Is(err, movies.ErrMovieNotFound):
		app.Http.NotFound(w, r, err.Error())
	case isTimeout(err):
		log.Warn("upstream timed out", "errMsg", err.Error())
		app.Http.Response(w, r, nil, "upstream listings API timed out", http.StatusGatewayTimeout)
	case errors.As(err, &authErr), errors.As(err, &fetchErr):
		log.Warn("upstream error", "errMsg", err.Error())
		app.Http.BadGateway(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

// isTimeout also sees through *AuthError, whose Unwrap exposes the
// transport error of a timed out authentication.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// queryErrors turns a schema decoding failure into per-parameter messages.
func queryErrors(err error) map[string]string {
	errs := make(map[string]string)
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		errs["query"] = err.Error()
		return errs
	}
	for key, e := range multi {
		var conv schema.ConversionError
		if errors.As(e, &conv) {
			errs[key] = "Value has an invalid format"
			continue
		}
		errs[key] = e.Error()
	}
	return errs
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return app.decodeJSON(w, r, dst, true)
}

// decodeJSON reads a single JSON value from the body. Movie snapshots are
// decoded with strict=false since upstream documents carry fields we don't model.
func (app *Application) decodeJSON(w http.ResponseWriter, r *http.Request, dst any, strict bool) error {
	maxBytes := 1_048_576 // 1MB
	src := http.MaxBytesReader(w, r.Body, int64(maxBytes))
	defer io.Copy(io.Discard, src)
	dec := json.NewDecoder(src)
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return handleJsonErr(err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func handleJsonErr(err error) error {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var invalidUnmarshalError *json.InvalidUnmarshalError
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError):
		return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("body contains badly-formed JSON")

	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field != "" {
			return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
		}
		return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

	case errors.Is(err, io.EOF):
		return errors.New("body must not be empty")

	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return fmt.Errorf("body contains unknown key %s", fieldName)

	case errors.As(err, &maxBytesError):
		return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

	case errors.As(err, &invalidUnmarshalError):
		panic(err)
	default:
		return err
	}
}
