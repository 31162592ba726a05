package emtapi

import (
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxFormMemory bounds the part of an upload kept in memory, the rest spills to temp files.
const DefaultMaxFormMemory = 32 << 20

// FormFromRequest reads a multipart form submitted by the dashboard so it can be
// forwarded to the backend as is: the first value of every field and every file part.
func FormFromRequest(r *http.Request, maxMemory int64) (map[string]string, []FormFile, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, nil, fmt.Errorf("parse multipart form: %w", err)
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	fields := make(map[string]string, len(r.MultipartForm.Value))
	for k, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			fields[k] = values[0]
		}
	}

	var files []FormFile
	for field, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return nil, nil, fmt.Errorf("open form file %s: %w", field, err)
			}
			content, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				return nil, nil, fmt.Errorf("read form file %s: %w", field, err)
			}
			files = append(files, FormFile{
				Field:    field,
				Filename: fh.Filename,
				Content:  content,
			})
		}
	}

	return fields, files, nil
}
