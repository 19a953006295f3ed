package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig describes the tree list geometry. Mouse hit testing and
// rendering both derive their coordinates from it.
type ListConfig struct {
	// HeaderLines sit above the first row: title bar (1) + search line (1).
	HeaderLines int

	// FooterLines sit below the last row: detail (1) + trash (1) +
	// form target (1) + message (1) + hints (1).
	FooterLines int

	// MinHeight is the minimum number of rows shown.
	MinHeight int

	// GutterWidth is the left margin of every row. Releasing a drag here
	// drops before the row instead of into it.
	GutterWidth int

	// IndentWidth is the indentation per depth level.
	IndentWidth int

	// ToggleWidth is the width of the expand/collapse glyph column.
	ToggleWidth int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// MoveMaxVisible: max items shown in the move picker.
	MoveMaxVisible int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	TitleCharLimit       int
	URLCharLimit         int
	ColorCharLimit       int
	DescriptionCharLimit int
	SearchCharLimit      int

	// StandardWidth is the display width of form and search inputs.
	StandardWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeaderLines: 2,
			FooterLines: 5,
			MinHeight:   3,
			GutterWidth: 2,
			IndentWidth: 2,
			ToggleWidth: 2,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  50,
			MinWidth:             40,
			MaxWidth:             80,
			MoveMaxVisible:       8,
			HelpLeftColumnWidth:  24,
			HelpRightColumnWidth: 26,
		},
		Input: InputConfig{
			TitleCharLimit:       100,
			URLCharLimit:         500,
			ColorCharLimit:       20, // "rgb(255, 255, 255)"
			DescriptionCharLimit: 300,
			SearchCharLimit:      100,
			StandardWidth:        40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
