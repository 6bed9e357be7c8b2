package padron

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Header variants tried, in priority order, for each recognized padron field.
// A variant matches only when its value is non-empty: empty cells fall
// through to the next variant.
var (
	dniHeaders       = []string{"dni", "DNI", "documento", "Documento"}
	nombreHeaders    = []string{"nombre", "Nombre"}
	apellidoHeaders  = []string{"apellido", "Apellido"}
	domicilioHeaders = []string{"domicilio", "Domicilio"}
	localidadHeaders = []string{"localidad", "Localidad"}
	provinciaHeaders = []string{"provincia", "Provincia"}
)

// recognizedHeaders is the union of all variant names. These are always
// excluded from the extras bag, matched or not.
var recognizedHeaders = func() map[string]bool {
	m := make(map[string]bool)
	for _, group := range [][]string{
		dniHeaders, nombreHeaders, apellidoHeaders,
		domicilioHeaders, localidadHeaders, provinciaHeaders,
	} {
		for _, h := range group {
			m[h] = true
		}
	}
	return m
}()

// Normalize decodes raw upload bytes permissively and parses them as a
// header-driven CSV. The first row is the header; every following row yields
// exactly one Row, regardless of content. A file with no data rows produces
// an empty slice.
func Normalize(data []byte) ([]Row, error) {
	r := csv.NewReader(bytes.NewReader(decodePermissive(data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, normalizeRow(header, rec))
	}
	return rows, nil
}

func normalizeRow(header, rec []string) Row {
	byName := make(map[string]string, len(header))
	for i, h := range header {
		// Missing trailing columns read as empty values.
		v := ""
		if i < len(rec) {
			v = rec[i]
		}
		byName[h] = v
	}

	row := Row{
		DNI:       pick(byName, dniHeaders),
		Nombre:    pick(byName, nombreHeaders),
		Apellido:  pick(byName, apellidoHeaders),
		Domicilio: pick(byName, domicilioHeaders),
		Localidad: pick(byName, localidadHeaders),
		Provincia: pick(byName, provinciaHeaders),
	}

	extras := make(map[string]string)
	for _, h := range header {
		if recognizedHeaders[h] {
			continue
		}
		extras[h] = byName[h]
	}
	if len(extras) > 0 {
		row.Extras = extras
	}
	return row
}

// pick returns the first non-empty value among the candidate headers.
func pick(byName map[string]string, candidates []string) string {
	for _, h := range candidates {
		if v := byName[h]; v != "" {
			return v
		}
	}
	return ""
}

// Member-directory uploads carry a fixed header set; only case variants are
// accepted.
var (
	legajoHeaders     = []string{"legajo", "Legajo"}
	nombresHeaders    = []string{"nombres", "Nombres"}
	apellidosHeaders  = []string{"apellidos", "Apellidos"}
	delegacionHeaders = []string{"delegacion", "Delegacion"}
	seccionalHeaders  = []string{"seccional", "Seccional"}
)

// NormalizeAfiliados decodes and parses a member-directory CSV. Like
// Normalize it is total: one Afiliado per data row, values verbatim.
// Uppercasing and the empty-legajo skip happen at ingest time.
func NormalizeAfiliados(data []byte) ([]Afiliado, error) {
	r := csv.NewReader(bytes.NewReader(decodePermissive(data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	afs := make([]Afiliado, 0, len(records)-1)
	for _, rec := range records[1:] {
		byName := make(map[string]string, len(header))
		for i, h := range header {
			v := ""
			if i < len(rec) {
				v = rec[i]
			}
			byName[h] = v
		}
		afs = append(afs, Afiliado{
			Legajo:     pick(byName, legajoHeaders),
			Nombres:    pick(byName, nombresHeaders),
			Apellidos:  pick(byName, apellidosHeaders),
			Delegacion: pick(byName, delegacionHeaders),
			Seccional:  pick(byName, seccionalHeaders),
		})
	}
	return afs, nil
}
