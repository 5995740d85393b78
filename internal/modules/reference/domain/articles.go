package domain

// French articles and connector words. Removal runs in list order.
var articles = []string{
	"le", "la", "l'", "les", "l’", "l' ", "l’ ", "l’", "l'",
	"un", "une", "des", "de",
	"au", "aux", "ce",
	"du", "des", "d’une", "d'une", "d’un", "d'un", "d’ ", "d' ", "d’", "d'", "de la", "de l'",
	"je", "on", "nous",
	"à la", "à l'", "à",
	"et", "en", "pour", "sur", "dans",
}

// Articles returns a copy of the stopword list.
func Articles() []string {
	out := make([]string, len(articles))
	copy(out, articles)
	return out
}
