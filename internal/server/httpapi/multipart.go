package httpapi

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/dmitrijs2005/skillshare/internal/filex"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
)

// form is a parsed multipart request.
type form struct {
	r *http.Request
}

func parseForm(w http.ResponseWriter, r *http.Request) (form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)
	if err := r.ParseMultipartForm(maxMultipartBody); err != nil {
		return form{}, common.Invalidf("expected a multipart form: %v", err)
	}
	return form{r: r}, nil
}

func (f form) value(name string) string {
	return strings.TrimSpace(f.r.FormValue(name))
}

// optional returns nil when the field was not sent at all, so callers can
// tell "keep" from "clear".
func (f form) optional(name string) *string {
	if _, ok := f.r.MultipartForm.Value[name]; !ok {
		return nil
	}
	return common.Text(f.value(name))
}

// number returns 0 for an absent field.
func (f form) number(name string) (int, error) {
	v := f.value(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, common.Invalidf("%s must be a number", name)
	}
	return n, nil
}

// image returns the uploaded file for name, or nil when none was sent.
// Only images up to filex.MaxImageSize are accepted.
func (f form) image(name string) (*models.Image, error) {
	file, header, err := f.r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, common.Invalidf("%s: %v", name, err)
	}
	defer file.Close()

	return readImage(name, file, header)
}

func readImage(name string, file multipart.File, header *multipart.FileHeader) (*models.Image, error) {
	if header.Size > filex.MaxImageSize {
		return nil, common.Invalidf("%s: %v", name, filex.ErrImageTooLarge)
	}
	data, err := io.ReadAll(io.LimitReader(file, filex.MaxImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > filex.MaxImageSize {
		return nil, common.Invalidf("%s: %v", name, filex.ErrImageTooLarge)
	}
	contentType, err := filex.ImageType(data)
	if err != nil {
		return nil, common.Invalidf("%s: %v", name, err)
	}
	return &models.Image{FileName: header.Filename, ContentType: contentType, Data: data}, nil
}
