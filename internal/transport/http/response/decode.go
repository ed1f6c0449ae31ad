package response

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/baechuer/flatfile-auth/internal/domain"
)

// Decode fills dst from the request body. JSON bodies are decoded directly;
// anything else is parsed as a form and mapped onto dst's json field names,
// so one DTO serves both encodings.
func Decode(r *http.Request, dst any) error {
	if isJSON(r) {
		return DecodeJSON(r, dst)
	}
	return DecodeForm(r, dst)
}

// DecodeJSON decodes a JSON request body into dst.
// It rejects multiple JSON values. An empty body leaves dst untouched.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return domain.ErrInvalidBody(err)
	}

	// Disallow trailing data: {}{}
	// Decode one more time; it must be EOF.
	if err := dec.Decode(&struct{}{}); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return domain.ErrInvalidBody(err)
	}

	return domain.ErrInvalidBody(errors.New("multiple JSON values"))
}

// DecodeForm maps url-encoded (or multipart) fields onto dst. Only the first
// value of each field is used.
func DecodeForm(r *http.Request, dst any) error {
	if err := parseForm(r); err != nil {
		return domain.ErrInvalidBody(err)
	}

	fields := make(map[string]string, len(r.PostForm))
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			fields[k] = vs[0]
		}
	}

	b, err := json.Marshal(fields)
	if err != nil {
		return domain.ErrInternal(err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return domain.ErrInvalidBody(err)
	}
	return nil
}

func parseForm(r *http.Request) error {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		return r.ParseMultipartForm(32 << 20)
	}
	return r.ParseForm()
}

func isJSON(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && ct == "application/json"
}
