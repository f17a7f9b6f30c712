package components

import (
	"strings"

	"mlibctl/internal/gateway"
	"mlibctl/internal/tui/styles"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// FolderList is the folder browser of the export dialog
type FolderList struct {
	list     list.Model
	folders  []gateway.Folder
	location string
	theme    styles.Styles
}

type folderItem gateway.Folder

func (i folderItem) FilterValue() string { return i.Name }

func (i folderItem) Title() string {
	if i.IsSymlink {
		return i.Name + " ->"
	}
	return i.Name
}

func (i folderItem) Description() string { return i.FullPath }

func NewFolderList(theme styles.Styles) *FolderList {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(theme.Selected.GetForeground()).BorderForeground(theme.Selected.GetForeground())
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(theme.Help.GetForeground()).BorderForeground(theme.Selected.GetForeground())

	l := list.New([]list.Item{}, d, 60, 12)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	l.Styles.Title = theme.Title
	l.Title = "/"

	return &FolderList{list: l, theme: theme}
}

// SetFolders replaces the listing shown for location
func (fl *FolderList) SetFolders(folders []gateway.Folder, location string) {
	fl.folders = folders
	fl.location = location
	items := make([]list.Item, len(folders))
	for i, f := range folders {
		items[i] = folderItem(f)
	}
	fl.list.SetItems(items)
	fl.list.Select(0)
	fl.list.Title = location
}

func (fl *FolderList) SetSize(width, height int) {
	fl.list.SetSize(width, height)
}

// Selected returns the folder under the cursor
func (fl *FolderList) Selected() (gateway.Folder, bool) {
	item, ok := fl.list.SelectedItem().(folderItem)
	if !ok {
		return gateway.Folder{}, false
	}
	return gateway.Folder(item), true
}

func (fl *FolderList) Cursor() int {
	return fl.list.Index()
}

func (fl *FolderList) MoveCursor(delta int) {
	for ; delta > 0; delta-- {
		fl.list.CursorDown()
	}
	for ; delta < 0; delta++ {
		fl.list.CursorUp()
	}
}

func (fl *FolderList) Len() int {
	return len(fl.folders)
}

func (fl *FolderList) Location() string {
	return fl.location
}

func (fl *FolderList) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	fl.list, cmd = fl.list.Update(msg)
	return cmd
}

func (fl *FolderList) View() string {
	if len(fl.folders) == 0 {
		var s strings.Builder
		s.WriteString(fl.theme.Title.Render(fl.location))
		s.WriteString("\n")
		s.WriteString(fl.theme.Unselected.Render("No folders here"))
		return s.String()
	}
	return fl.list.View()
}

// SetStyles applies a new theme
func (fl *FolderList) SetStyles(theme styles.Styles) {
	fl.theme = theme
	fl.list.Styles.Title = theme.Title
}
