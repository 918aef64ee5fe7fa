package phone

import "strings"

// Normalize remove tudo que não for dígito. O telefone normalizado é a
// chave de identidade do cliente dentro da unidade.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
