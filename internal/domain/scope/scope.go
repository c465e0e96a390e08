// Package scope centraliza el predicado de autorización multi-tenant.
//
// Una entidad (cliente, proyecto o albarán) es visible para un principal si la
// creó él o si pertenece a su misma empresa. Este predicado se construye aquí
// una única vez y lo consumen todos los repositorios: duplicarlo por ruta es
// la forma clásica de acabar filtrando datos entre tenants.
package scope

import "fmt"

// Principal usuario autenticado con su empresa ya resuelta. CompanyID vacío
// significa que el usuario no pertenece a ninguna empresa; da igual si la
// empresa viene de ser dueño o de ser invitado, aquí ya llega como un ID plano.
type Principal struct {
	UserID    string
	CompanyID string
}

// HasCompany indica si el principal pertenece a una empresa.
func (p Principal) HasCompany() bool { return p.CompanyID != "" }

// Filter devuelve la cláusula SQL de pertenencia y sus argumentos, numerando
// los placeholders a partir de start. Sin empresa la cláusula se reduce a
// created_by; con empresa es (created_by = $n OR company_id = $m).
func Filter(p Principal, start int) (string, []any) {
	if !p.HasCompany() {
		return fmt.Sprintf("created_by = $%d", start), []any{p.UserID}
	}
	return fmt.Sprintf("(created_by = $%d OR company_id = $%d)", start, start+1),
		[]any{p.UserID, p.CompanyID}
}
