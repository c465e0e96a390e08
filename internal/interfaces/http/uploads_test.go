package http

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverdu/albaranes-api/internal/domain"
)

// buildUploadApp expone readImageUpload tras una ruta para ejercitarlo con
// cuerpos multipart reales.
func buildUploadApp() *fiber.App {
	app := fiber.New(fiber.Config{BodyLimit: 10 << 20})
	app.Post("/upload", func(c *fiber.Ctx) error {
		data, ext, err := readImageUpload(c, "logo")
		if err != nil {
			status := fiber.StatusInternalServerError
			if errors.Is(err, domain.ErrInvalidInput) {
				status = fiber.StatusBadRequest
			}
			return c.Status(status).SendString(err.Error())
		}
		return c.JSON(fiber.Map{"ext": ext, "size": len(data)})
	})
	return app
}

// multipartUpload arma un cuerpo multipart con un único archivo, fijando el
// Content-Type de la parte (FormFile del lado servidor lo lee de ahí).
func multipartUpload(t *testing.T, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="logo"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func uploadBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return buf.String()
}

func TestReadImageUpload_PNGValido(t *testing.T) {
	app := buildUploadApp()

	resp, err := app.Test(multipartUpload(t, "logo.png", "image/png", []byte{0x89, 'P', 'N', 'G'}), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, uploadBody(t, resp), `".png"`)
}

// Una imagen por encima del límite de 5MB se rechaza con error de validación.
func TestReadImageUpload_RechazaMasDe5MB(t *testing.T) {
	app := buildUploadApp()
	oversized := make([]byte, maxImageUploadBytes+1)

	resp, err := app.Test(multipartUpload(t, "grande.png", "image/png", oversized), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, uploadBody(t, resp), "5MB")
}

// Solo se aceptan archivos con Content-Type image/*.
func TestReadImageUpload_RechazaContentTypeNoImagen(t *testing.T) {
	app := buildUploadApp()

	resp, err := app.Test(multipartUpload(t, "nota.txt", "text/plain", []byte("no soy una imagen")), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, uploadBody(t, resp), "debe ser una imagen")
}

// Sin extensión válida en el nombre, la extensión sale del Content-Type.
func TestReadImageUpload_ExtensionDesdeContentType(t *testing.T) {
	app := buildUploadApp()

	resp, err := app.Test(multipartUpload(t, "firma", "image/webp", []byte("RIFF....WEBP")), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, uploadBody(t, resp), `".webp"`)
}

func TestReadImageUpload_FormatoNoSoportado(t *testing.T) {
	app := buildUploadApp()

	resp, err := app.Test(multipartUpload(t, "anim.gif", "image/gif", []byte("GIF89a")), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, uploadBody(t, resp), "no soportado")
}

func TestReadImageUpload_SinArchivo(t *testing.T) {
	app := buildUploadApp()

	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, uploadBody(t, resp), "falta el archivo")
}
