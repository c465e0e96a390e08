package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_GuardaYRecupera(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	url, err := store.SavePDF("nota-1", []byte("%PDF-1.7 contenido"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/pdfs/albaran-nota-1.pdf", url)
	assert.True(t, store.Exists(url))

	data, err := store.ReadByURL(url)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 contenido"), data)
}

func TestLocalStore_FirmasYLogosConExtension(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	sigURL, err := store.SaveSignature(".png", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Contains(t, sigURL, "/uploads/signatures/")
	assert.Contains(t, sigURL, ".png")

	logoURL, err := store.SaveLogo(".jpg", []byte{0xFF, 0xD8})
	require.NoError(t, err)
	assert.Contains(t, logoURL, "/uploads/logos/")
}

func TestLocalStore_URLsFueraDelAlmacen(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	// Rutas de la API no son artefactos del almacenamiento
	_, ok := store.AbsPath("/api/deliverynote/pdf/abc")
	assert.False(t, ok)
	assert.False(t, store.Exists("/api/deliverynote/pdf/abc"))

	// Escapes con .. se rechazan
	_, ok = store.AbsPath("/uploads/../etc/passwd")
	assert.False(t, ok)

	_, err = store.ReadByURL("/otro/sitio.pdf")
	assert.Error(t, err)
}

func TestLocalStore_RemoveBorraElArtefacto(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	url, err := store.SaveSignature(".png", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	require.True(t, store.Exists(url))

	require.NoError(t, store.Remove(url))
	assert.False(t, store.Exists(url))

	// Repetir o borrar URLs ajenas no falla
	assert.NoError(t, store.Remove(url))
	assert.NoError(t, store.Remove("/api/deliverynote/pdf/abc"))
}

func TestLocalStore_ExistsSobreInexistente(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	assert.False(t, store.Exists("/uploads/pdfs/no-esta.pdf"))
}
