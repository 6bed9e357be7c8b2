package padron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_OneRowPerDataLine(t *testing.T) {
	csv := "dni,nombre\n123,ANA\n,\n456,JUAN\n"

	rows, err := Normalize([]byte(csv))
	require.NoError(t, err)

	// Every data line yields a row, including the fully empty one.
	require.Len(t, rows, 3)
	assert.Equal(t, "123", rows[0].DNI)
	assert.Equal(t, "", rows[1].DNI)
	assert.Equal(t, "456", rows[2].DNI)
}

func TestNormalize_HeaderVariantPriority(t *testing.T) {
	// dni comes before DNI and documento; empty cells fall through.
	csv := "dni,DNI,documento\n111,222,333\n,222,333\n,,333\n"

	rows, err := Normalize([]byte(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "111", rows[0].DNI)
	assert.Equal(t, "222", rows[1].DNI)
	assert.Equal(t, "333", rows[2].DNI)
}

func TestNormalize_AllFields(t *testing.T) {
	csv := "Documento,Nombre,Apellido,Domicilio,Localidad,Provincia\n" +
		"30111222,MARIA,LOPEZ,CALLE 1,ROSARIO,SANTA FE\n"

	rows, err := Normalize([]byte(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "30111222", r.DNI)
	assert.Equal(t, "MARIA", r.Nombre)
	assert.Equal(t, "LOPEZ", r.Apellido)
	assert.Equal(t, "CALLE 1", r.Domicilio)
	assert.Equal(t, "ROSARIO", r.Localidad)
	assert.Equal(t, "SANTA FE", r.Provincia)
	assert.Nil(t, r.Extras)
}

func TestNormalize_ExtrasBag(t *testing.T) {
	// Unrecognized headers land in Extras; recognized variants never do,
	// even when another variant won the field.
	csv := "dni,DNI,telefono,seccion\n123,999,555-1234,A\n"

	rows, err := Normalize([]byte(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "123", r.DNI)
	assert.Equal(t, map[string]string{
		"telefono": "555-1234",
		"seccion":  "A",
	}, r.Extras)
	assert.NotContains(t, r.Extras, "DNI")
}

func TestNormalize_ExtrasKeepEmptyValues(t *testing.T) {
	csv := "dni,telefono\n123,\n"

	rows, err := Normalize([]byte(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, map[string]string{"telefono": ""}, rows[0].Extras)
}

func TestNormalize_ShortRows(t *testing.T) {
	// Missing trailing columns read as empty.
	csv := "dni,nombre,apellido\n123,ANA\n456\n"

	rows, err := Normalize([]byte(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "ANA", rows[0].Nombre)
	assert.Equal(t, "", rows[0].Apellido)
	assert.Equal(t, "456", rows[1].DNI)
	assert.Equal(t, "", rows[1].Nombre)
}

func TestNormalize_EmptyInput(t *testing.T) {
	rows, err := Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = Normalize([]byte("dni,nombre\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestNormalize_BOMStripped(t *testing.T) {
	csv := append([]byte{0xEF, 0xBB, 0xBF}, []byte("dni\n123\n")...)

	rows, err := Normalize(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "123", rows[0].DNI)
}

func TestNormalize_InvalidBytesReplaced(t *testing.T) {
	// 0xFF is not valid UTF-8; the value survives with a replacement rune.
	csv := []byte("dni,nombre\n123,AN\xFFA\n")

	rows, err := Normalize(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AN�A", rows[0].Nombre)
}

func TestNormalizeAfiliados(t *testing.T) {
	csv := "Legajo,Nombres,Apellidos,Delegacion,Seccional\n" +
		"L-001,Carlos,Gomez,Centro,Primera\n" +
		",x,y,z,w\n"

	afs, err := NormalizeAfiliados([]byte(csv))
	require.NoError(t, err)
	require.Len(t, afs, 2)

	assert.Equal(t, "L-001", afs[0].Legajo)
	assert.Equal(t, "Carlos", afs[0].Nombres)
	assert.Equal(t, "Gomez", afs[0].Apellidos)
	assert.Equal(t, "Centro", afs[0].Delegacion)
	assert.Equal(t, "Primera", afs[0].Seccional)

	// Values come back verbatim; skipping empty legajos is ingest's job.
	assert.Equal(t, "", afs[1].Legajo)
	assert.Equal(t, "x", afs[1].Nombres)
}

func TestDecodePermissive(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"valid passthrough", []byte("hola"), "hola"},
		{"bom stripped", []byte{0xEF, 0xBB, 0xBF, 'a'}, "a"},
		{"invalid byte replaced", []byte{'a', 0xFF, 'b'}, "a�b"},
		{"latin1 accent replaced", []byte{'J', 0xF3, 's', 'e'}, "J�se"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(decodePermissive(tt.in)))
		})
	}
}
