package naming

import "strings"

// Fields are the record values a custom template may reference
type Fields struct {
	Title      string
	Uploader   string
	Channel    string
	UploadDate string
	ID         string
	Extractor  string
}

// Placeholders lists the tokens understood in custom templates
func Placeholders() []string {
	return []string{"{title}", "{uploader}", "{channel}", "{upload_date}", "{id}", "{extractor}"}
}

// Preview substitutes placeholders in template with f. Unknown tokens are
// left as they are. The backend does the authoritative substitution when
// exporting; this is only what the dialog shows next to the input.
func Preview(template string, f Fields) string {
	title := f.Title
	if title == "" {
		title = DefaultTitle
	}
	r := strings.NewReplacer(
		"{title}", title,
		"{uploader}", f.Uploader,
		"{channel}", f.Channel,
		"{upload_date}", f.UploadDate,
		"{id}", f.ID,
		"{extractor}", f.Extractor,
	)
	return r.Replace(template)
}

// HasPlaceholders reports whether s uses any template token
func HasPlaceholders(s string) bool {
	for _, p := range Placeholders() {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
