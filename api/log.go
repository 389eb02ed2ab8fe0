package api

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/JackalLabs/harvester/api/types"
	"github.com/rs/zerolog/log"
)

const defaultLogBytes = 4096

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Debug().
			Str("method", req.Method).
			Str("url", req.URL.RequestURI()).
			Str("user_agent", req.UserAgent()).
			Str("remote_addr", req.RemoteAddr).
			Msg("incoming http request")
		next.ServeHTTP(w, req)
	})
}

// LogHandler returns the tail of the log file. The size comes from the
// "bytes" header. An empty file name disables it.
func LogHandler(logFileName string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if logFileName == "" {
			types.WriteError(w, http.StatusForbidden, errors.New("log api is disabled"))
			return
		}

		size := int64(defaultLogBytes)
		if v := req.Header.Get("bytes"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n <= 0 {
				types.WriteError(w, http.StatusBadRequest, errors.New("failed to parse int"))
				return
			}
			size = n
		}

		logf, err := os.Open(logFileName)
		if err != nil {
			types.WriteError(w, http.StatusInternalServerError, errors.New("failed to get logs"))
			return
		}
		defer logf.Close()

		tail, err := readTail(logf, size)
		if err != nil {
			log.Warn().Err(err).Str("file", logFileName).Msg("cannot read log file")
			types.WriteError(w, http.StatusInternalServerError, errors.New("failed to get logs"))
			return
		}
		types.WriteJSON(w, http.StatusOK, string(tail))
	}
}

func readTail(f *os.File, size int64) ([]byte, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size = min(size, info.Size())

	if _, err := f.Seek(-size, io.SeekEnd); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
