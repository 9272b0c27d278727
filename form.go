package farfetch

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
)

// File is one file attached to a multipart request. ContentType is optional;
// when empty the part defaults to application/octet-stream.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// Files holds the files of a request in exactly one of three shapes: a
// single file (form field "file"), an ordered list (repeated field
// "files[]"), or ordered named groups. Construct with SingleFile, FileList
// or GroupedFiles.
type Files struct {
	single *File
	list   []File
	groups []FileGroup
}

// FileGroup is one named category of files. GroupFile declares a single-file
// category (field "<name>"); GroupFiles declares a list category (repeated
// field "<name>[]"). The single-vs-list distinction follows the constructor,
// not the element count.
type FileGroup struct {
	name  string
	files []File
	list  bool
}

// SingleFile attaches one file under the fixed field name "file".
func SingleFile(f File) *Files {
	return &Files{single: &f}
}

// FileList attaches files in order under the repeated field name "files[]".
func FileList(files ...File) *Files {
	return &Files{list: files}
}

// GroupedFiles attaches named categories in declaration order.
func GroupedFiles(groups ...FileGroup) *Files {
	return &Files{groups: groups}
}

// GroupFile declares a single-file category.
func GroupFile(name string, f File) FileGroup {
	return FileGroup{name: name, files: []File{f}}
}

// GroupFiles declares a list category; every file is added under "<name>[]"
// in order.
func GroupFiles(name string, files ...File) FileGroup {
	return FileGroup{name: name, files: files, list: true}
}

// buildForm assembles the multipart payload: auxiliary fields from data
// first (sorted by key), then the files in their declared order. Returns the
// body and the Content-Type carrying the boundary.
func buildForm(files *Files, data map[string]any) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := w.WriteField(key, encodeValue(data[key])); err != nil {
			return nil, "", fmt.Errorf("write form field %q: %w", key, err)
		}
	}

	switch {
	case files.single != nil:
		if err := addFilePart(w, "file", *files.single); err != nil {
			return nil, "", err
		}
	case files.list != nil:
		for _, f := range files.list {
			if err := addFilePart(w, "files[]", f); err != nil {
				return nil, "", err
			}
		}
	default:
		for _, g := range files.groups {
			field := g.name
			if g.list {
				field += "[]"
			}
			for _, f := range g.files {
				if err := addFilePart(w, field, f); err != nil {
					return nil, "", err
				}
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func addFilePart(w *multipart.Writer, field string, f File) error {
	var part io.Writer
	var err error
	if f.ContentType == "" {
		part, err = w.CreateFormFile(field, f.Name)
	} else {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(field), escapeQuotes(f.Name)))
		h.Set("Content-Type", f.ContentType)
		part, err = w.CreatePart(h)
	}
	if err != nil {
		return fmt.Errorf("create form part %q: %w", field, err)
	}
	if f.Content != nil {
		if _, err := io.Copy(part, f.Content); err != nil {
			return fmt.Errorf("copy file %q: %w", f.Name, err)
		}
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
