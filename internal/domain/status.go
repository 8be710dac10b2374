package domain

import "strings"

// FileType classifies a resource by the folder it was uploaded under.
type FileType string

const (
	FileTypeNote         FileType = "note"
	FileTypeVideo        FileType = "video"
	FileTypePastQuestion FileType = "past_question"
)

// ApprovalStatus is the moderation state of a resource row. Linked files skip
// moderation.
type ApprovalStatus string

const ApprovalApproved ApprovalStatus = "approved"

// FileTypePolicy maps file-type folder names to file types. Folder names
// missing from Folders resolve to Fallback.
type FileTypePolicy struct {
	Folders  map[string]FileType
	Fallback FileType
}

// DefaultFileTypePolicy accepts singular and plural folder names and files
// anything it does not recognise as a note.
var DefaultFileTypePolicy = FileTypePolicy{
	Folders: map[string]FileType{
		"notes":          FileTypeNote,
		"note":           FileTypeNote,
		"videos":         FileTypeVideo,
		"video":          FileTypeVideo,
		"past_questions": FileTypePastQuestion,
		"past_question":  FileTypePastQuestion,
	},
	Fallback: FileTypeNote,
}

// Resolve returns the file type for folder (case-insensitive, trimmed) and
// whether it came from the table rather than the fallback.
func (p FileTypePolicy) Resolve(folder string) (FileType, bool) {
	if ft, ok := p.Folders[strings.ToLower(strings.TrimSpace(folder))]; ok {
		return ft, true
	}

	return p.Fallback, false
}
