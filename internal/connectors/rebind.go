package connectors

import "strings"

// Rebind переводит нейтральный SQL (маркер ?, идентификаторы в `) в синтаксис СУБД.
// Содержимое строковых литералов '...' не трогаем
func Rebind(d Dialect, query string) string {
	quote := d.IdentQuote()
	if d.Placeholder(1) == "?" && quote == "`" {
		return query
	}

	var builder strings.Builder
	builder.Grow(len(query) + 10)
	paramIndex := 1
	inSingleQuote := false

	for i := 0; i < len(query); i++ {
		char := query[i]

		if inSingleQuote {
			builder.WriteByte(char)
			if char == '\\' && i+1 < len(query) {
				builder.WriteByte(query[i+1])
				i++
				continue
			}
			if char == '\'' {
				// '' внутри литерала - экранированная кавычка
				if i+1 < len(query) && query[i+1] == '\'' {
					builder.WriteByte('\'')
					i++
					continue
				}
				inSingleQuote = false
			}
			continue
		}

		switch char {
		case '\'':
			inSingleQuote = true
			builder.WriteByte(char)
		case '`':
			builder.WriteString(quote)
		case '?':
			builder.WriteString(d.Placeholder(paramIndex))
			paramIndex++
		default:
			builder.WriteByte(char)
		}
	}
	return builder.String()
}
