package http

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dverdu/albaranes-api/internal/domain"
)

// Límite para imágenes subidas (firmas y logos).
const maxImageUploadBytes = 5 << 20 // 5 MB

// readImageUpload lee un archivo multipart validando que sea una imagen de
// tamaño razonable. Devuelve los bytes y la extensión normalizada.
func readImageUpload(c *fiber.Ctx, field string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("%w: falta el archivo '%s'", domain.ErrInvalidInput, field)
	}
	if fileHeader.Size > maxImageUploadBytes {
		return nil, "", fmt.Errorf("%w: '%s' supera el máximo de 5MB", domain.ErrInvalidInput, field)
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("%w: '%s' debe ser una imagen", domain.ErrInvalidInput, field)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("abrir upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageUploadBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("leer upload: %w", err)
	}
	if len(data) > maxImageUploadBytes {
		return nil, "", fmt.Errorf("%w: '%s' supera el máximo de 5MB", domain.ErrInvalidInput, field)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		// Extensión por content-type cuando el nombre no trae una válida
		switch contentType {
		case "image/png":
			ext = ".png"
		case "image/jpeg":
			ext = ".jpg"
		case "image/webp":
			ext = ".webp"
		default:
			return nil, "", fmt.Errorf("%w: formato de imagen no soportado", domain.ErrInvalidInput)
		}
	}
	return data, ext, nil
}
