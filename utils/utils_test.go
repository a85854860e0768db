package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "paracetamol-500mg", Slugify("Paracetamol 500mg"))
	assert.Equal(t, "vitamin-d3-60k", Slugify("  Vitamin D3 (60K)! "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestGenerateIDLength(t *testing.T) {
	assert.Len(t, GenerateID(12), 12)
	assert.NotEqual(t, GenerateID(12), GenerateID(12))
}

func TestSaveFileNamesWithUUID(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "pill.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not-really-a-png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	defer file.Close()

	dir := t.TempDir()
	name, err := SaveFile(file, header, dir)
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(name, ".png"))
	_, err = uuid.Parse(strings.TrimSuffix(name, ".png"))
	assert.NoError(t, err, "saved filename should be a uuid")

	_, err = os.Stat(filepath.Join(dir, name))
	assert.NoError(t, err)
}
