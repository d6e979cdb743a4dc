package model

import "strings"

// NormalizeList обрезает пробелы и убирает пустые элементы списка (хайлайты, удобства, типы номеров).
func NormalizeList(items []string) []string {
	out := []string{}
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
