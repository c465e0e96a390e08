package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dverdu/albaranes-api/internal/domain/scope"
)

func TestFilter_SinEmpresa(t *testing.T) {
	p := scope.Principal{UserID: "u1"}

	clause, args := scope.Filter(p, 1)

	assert.Equal(t, "created_by = $1", clause)
	assert.Equal(t, []any{"u1"}, args)
}

func TestFilter_ConEmpresa(t *testing.T) {
	p := scope.Principal{UserID: "u1", CompanyID: "c1"}

	clause, args := scope.Filter(p, 1)

	assert.Equal(t, "(created_by = $1 OR company_id = $2)", clause)
	assert.Equal(t, []any{"u1", "c1"}, args)
}

// Los repositorios anteponen sus propios parámetros (id, flags), así que la
// numeración debe poder arrancar en cualquier posición.
func TestFilter_OffsetArbitrario(t *testing.T) {
	p := scope.Principal{UserID: "u1", CompanyID: "c1"}

	clause, args := scope.Filter(p, 3)

	assert.Equal(t, "(created_by = $3 OR company_id = $4)", clause)
	assert.Len(t, args, 2)
}

func TestHasCompany(t *testing.T) {
	assert.False(t, scope.Principal{UserID: "u1"}.HasCompany())
	assert.True(t, scope.Principal{UserID: "u1", CompanyID: "c1"}.HasCompany())
}
