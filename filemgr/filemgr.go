package filemgr

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"

	"successspace/utils"
)

const thumbWidth = 320

var dataURLRe = regexp.MustCompile(`^data:(.+?);base64,(.*)$`)

// Uploader writes admin-uploaded images under dir and serves them at /uploads/.
type Uploader struct {
	dir string
}

func NewUploader(dir string) (*Uploader, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &Uploader{dir: dir}, nil
}

// ext picks the file extension from the dataURL mime when present, falling
// back to the filename hint, defaulting to png.
func ext(mime, hint string) string {
	switch mime {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	}
	hint = strings.ToLower(hint)
	switch {
	case strings.HasSuffix(hint, ".jpg"), strings.HasSuffix(hint, ".jpeg"):
		return "jpg"
	case strings.HasSuffix(hint, ".gif"):
		return "gif"
	case strings.HasSuffix(hint, ".webp"):
		return "webp"
	}
	return "png"
}

// Save decodes raw base64 or a data URL, writes the image and a thumbnail, and
// returns their public URL paths. The thumbnail is best-effort: formats the
// decoder does not know just skip it.
func (u *Uploader) Save(data, filenameHint string) (url string, thumbURL string, err error) {
	raw := data
	mime := ""
	if m := dataURLRe.FindStringSubmatch(data); m != nil {
		mime, raw = m[1], m[2]
	}
	buf, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", "", err
	}

	id := utils.GenerateRandomString(16)
	name := id + "." + ext(mime, filenameHint)
	if err := os.WriteFile(filepath.Join(u.dir, name), buf, 0644); err != nil {
		return "", "", err
	}
	url = "/uploads/" + name

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		log.Printf("filemgr: no thumbnail for %s: %v", name, err)
		return url, "", nil
	}
	if img.Bounds().Dx() > thumbWidth {
		img = imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	}
	thumbName := id + "_thumb.jpg"
	if err := imaging.Save(img, filepath.Join(u.dir, thumbName)); err != nil {
		log.Printf("filemgr: saving thumbnail for %s failed: %v", name, err)
		return url, "", nil
	}
	return url, "/uploads/" + thumbName, nil
}

// Upload handles POST /api/admin/upload with a JSON body of
// {filename, base64}; base64 accepts a raw string or a data URL.
func (u *Uploader) Upload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Filename string `json:"filename"`
		Base64   string `json:"base64"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.Base64 == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "base64 required")
		return
	}
	if input.Filename == "" {
		input.Filename = "upload.png"
	}
	url, thumbURL, err := u.Save(input.Base64, input.Filename)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Upload failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"url": url, "thumbUrl": thumbURL})
}
