// ABOUTME: Fixed page text around the lesson: the initiative blurb and the sidebar sections.
// ABOUTME: Written as markdown and converted once at startup.
package web

import (
	"fmt"
	"html/template"

	"github.com/2389-research/lessonview/render"
)

// SidebarSection is one headed block of the sidebar.
type SidebarSection struct {
	Header string
	Body   template.HTML
}

const introMarkdown = `**#30DaysOfStreamlit** to programistyczne wyzwanie, które pomoże Ci rozpocząć przygodę z
tworzeniem aplikacji Streamlit.

Przede wszystkim, nauczysz się:
- Jak skonfigurować środowisko do tworzenia aplikacji Streamlit
- Jak zbudować swoją pierwszą aplikację
- W jaki sposób korzystać w wielu niesamowitych widżetów, które pomogą Ci zbudować interaktywną aplikację
`

var sidebarMarkdown = []struct{ header, body string }{
	{
		header: "O Streamlicie",
		body: "[Streamlit](https://streamlit.io) jest biblioteką Pythona, która umożliwia tworzenie " +
			"interaktywnych aplikacji internetowych opartych na danych. " +
			"Aplikacje tworzysz wyłącznie z użyciem Pythona i bez konieczności używania innych technologii, " +
			"takich jak JavaScript, HTML, CSS.",
	},
	{
		header: "Zobacz też (materiały po angielsku)",
		body: `- [Dokumentacja Streamlita](https://docs.streamlit.io/)
- [Ściągawka](https://docs.streamlit.io/library/cheatsheet)
- [Książka](https://www.amazon.com/dp/180056550X) (Pierwsze kroki ze Streamlitem w przetwarzaniu danych)
- [Blog](https://blog.streamlit.io/how-to-master-streamlit-for-data-science/) (Jak opanować Streamlita do analizy danych)
`,
	},
	{
		header: "Wdrażanie",
		body: "Dzięki [Społecznościowej Chmurze Streamlita](https://streamlit.io/cloud) możesz szybko wdrożyć " +
			"swoją aplikację za pomocą kilku kliknięć.",
	},
}

func renderChrome(md *render.Markdown) (template.HTML, []SidebarSection, error) {
	intro, err := md.HTML(introMarkdown)
	if err != nil {
		return "", nil, fmt.Errorf("rendering intro: %w", err)
	}
	sections := make([]SidebarSection, 0, len(sidebarMarkdown))
	for _, sec := range sidebarMarkdown {
		body, err := md.HTML(sec.body)
		if err != nil {
			return "", nil, fmt.Errorf("rendering sidebar %q: %w", sec.header, err)
		}
		sections = append(sections, SidebarSection{Header: sec.header, Body: body})
	}
	return intro, sections, nil
}
