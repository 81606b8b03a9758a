// Package locale holds the fixed user-facing strings of the grid.
package locale

import "fmt"

// Strings is one language's set of grid labels.
type Strings struct {
	Code              string
	Dir               string // "rtl" or "ltr"
	SearchPlaceholder string
	NoData            string
	Columns           string
	Loading           string
	Previous          string
	Next              string
	summary           string
	selected          string
	loaded            string
	loadFailed        string
}

var (
	Arabic = Strings{
		Code:              "ar",
		Dir:               "rtl",
		SearchPlaceholder: "البحث ...",
		NoData:            "لا توجد بيانات",
		Columns:           "تصفية الأعمدة",
		Loading:           "جار التحميل",
		Previous:          "السابق",
		Next:              "التالي",
		summary:           "عرض %d إلى %d من %d",
		selected:          "%d محدد",
		loaded:            "تم تحميل %d صف",
		loadFailed:        "فشل التحميل: %v",
	}

	English = Strings{
		Code:              "en",
		Dir:               "ltr",
		SearchPlaceholder: "Search ...",
		NoData:            "No data",
		Columns:           "Columns",
		Loading:           "Loading",
		Previous:          "Previous",
		Next:              "Next",
		summary:           "Showing %d to %d of %d",
		selected:          "%d selected",
		loaded:            "Loaded %d rows",
		loadFailed:        "Load failed: %v",
	}
)

// For returns the strings for a locale code. Unknown codes get Arabic.
func For(code string) Strings {
	if code == English.Code {
		return English
	}
	return Arabic
}

// Summary formats the row range of a page. An empty range yields NoData.
func (s Strings) Summary(from, to, total int) string {
	if total == 0 || from == 0 {
		return s.NoData
	}
	return fmt.Sprintf(s.summary, from, to, total)
}

// Selected formats the selected-row count.
func (s Strings) Selected(n int) string {
	return fmt.Sprintf(s.selected, n)
}

// Loaded formats the message shown after a successful load.
func (s Strings) Loaded(rows int) string {
	return fmt.Sprintf(s.loaded, rows)
}

// LoadFailed formats a load error for the status bar.
func (s Strings) LoadFailed(err error) string {
	return fmt.Sprintf(s.loadFailed, err)
}
