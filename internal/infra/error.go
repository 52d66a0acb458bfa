package infra

import (
	"errors"
	"log/slog"

	"parking-booking-gateway/internal/pkg/errs"
)

type StorageErrorKind string

type StorageError struct {
	Kind StorageErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e StorageError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e StorageError) Unwrap() error {
	return e.err
}

func WrapStorageErr(slogger *slog.Logger, kind StorageErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	slogger.Error("Storage error: "+msg, logArgs...)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return StorageError{Kind: kind, msg: msg, err: err}
}

// Is lets callers match any storage failure against the shared sentinel.
func (e StorageError) Is(target error) bool {
	return target == errs.ErrStorageOperationFailed
}

func IsKind(err error, kind StorageErrorKind) bool {
	var e StorageError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

const (
	KindQueryBuild    StorageErrorKind = "QUERY_BUILD"
	KindDBFailure     StorageErrorKind = "DB_FAILURE"
	KindSchemaFailure StorageErrorKind = "SCHEMA_FAILURE"
	KindNotifyFailure StorageErrorKind = "NOTIFY_FAILURE"
)
