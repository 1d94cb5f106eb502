package utils

import "strings"

// SplitHabilidades quebra o texto do formulário (vírgulas ou quebras de
// linha) em uma lista de habilidades, sem itens vazios.
func SplitHabilidades(texto string) []string {
	campos := strings.FieldsFunc(texto, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	out := make([]string, 0, len(campos))
	for _, c := range campos {
		c = strings.TrimSpace(c)
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// JoinHabilidades remonta a lista no formato usado pelo formulário de edição.
func JoinHabilidades(habilidades []string) string {
	return strings.Join(habilidades, ", ")
}
