package farfetch

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formPart struct {
	field    string
	filename string
	value    string
}

func readParts(t *testing.T, body io.Reader, contentType string) []formPart {
	t.Helper()

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(body, params["boundary"])
	var parts []formPart
	for {
		p, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(p)
		require.NoError(t, err)
		parts = append(parts, formPart{
			field:    p.FormName(),
			filename: p.FileName(),
			value:    string(content),
		})
	}
	return parts
}

func TestBuildFormSingleFile(t *testing.T) {
	files := SingleFile(File{Name: "photo.jpg", Content: strings.NewReader("jpegdata")})

	buf, contentType, err := buildForm(files, nil)
	require.NoError(t, err)

	parts := readParts(t, buf, contentType)
	require.Len(t, parts, 1)
	assert.Equal(t, "file", parts[0].field)
	assert.Equal(t, "photo.jpg", parts[0].filename)
	assert.Equal(t, "jpegdata", parts[0].value)
}

func TestBuildFormFileList(t *testing.T) {
	files := FileList(
		File{Name: "a.txt", Content: strings.NewReader("A")},
		File{Name: "b.txt", Content: strings.NewReader("B")},
	)

	buf, contentType, err := buildForm(files, nil)
	require.NoError(t, err)

	parts := readParts(t, buf, contentType)
	require.Len(t, parts, 2)
	assert.Equal(t, "files[]", parts[0].field)
	assert.Equal(t, "a.txt", parts[0].filename)
	assert.Equal(t, "files[]", parts[1].field)
	assert.Equal(t, "b.txt", parts[1].filename)
}

func TestBuildFormGroupedFilesPreservesOrder(t *testing.T) {
	files := GroupedFiles(
		GroupFiles("photos",
			File{Name: "f1.jpg", Content: strings.NewReader("1")},
			File{Name: "f2.jpg", Content: strings.NewReader("2")},
		),
		GroupFile("doc", File{Name: "f3.pdf", Content: strings.NewReader("3")}),
	)

	buf, contentType, err := buildForm(files, nil)
	require.NoError(t, err)

	parts := readParts(t, buf, contentType)
	require.Len(t, parts, 3)
	assert.Equal(t, "photos[]", parts[0].field)
	assert.Equal(t, "f1.jpg", parts[0].filename)
	assert.Equal(t, "photos[]", parts[1].field)
	assert.Equal(t, "f2.jpg", parts[1].filename)
	assert.Equal(t, "doc", parts[2].field)
	assert.Equal(t, "f3.pdf", parts[2].filename)
}

func TestBuildFormAuxiliaryFieldsFirst(t *testing.T) {
	files := SingleFile(File{Name: "x.bin", Content: strings.NewReader("bin")})
	data := map[string]any{
		"caption": "holiday",
		"tags":    []string{"beach", "sun"},
	}

	buf, contentType, err := buildForm(files, data)
	require.NoError(t, err)

	parts := readParts(t, buf, contentType)
	require.Len(t, parts, 3)

	// Data fields precede the file, sorted by key; composites are JSON.
	assert.Equal(t, "caption", parts[0].field)
	assert.Equal(t, "holiday", parts[0].value)
	assert.Equal(t, "tags", parts[1].field)
	assert.Equal(t, `["beach","sun"]`, parts[1].value)
	assert.Equal(t, "file", parts[2].field)
}

func TestBuildFormCustomContentType(t *testing.T) {
	files := SingleFile(File{
		Name:        "report.csv",
		ContentType: "text/csv",
		Content:     strings.NewReader("a,b"),
	})

	buf, contentType, err := buildForm(files, nil)
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(buf, params["boundary"])
	p, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "text/csv", p.Header.Get("Content-Type"))
}
