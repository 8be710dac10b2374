package domain

// MimeTypePDF is stamped on every linked resource.
const MimeTypePDF = "application/pdf"

// Course is a row of the courses table.
type Course struct {
	ID         int64  `db:"id"`
	CourseCode string `db:"course_code"`
	Department string `db:"department"`
	Level      int    `db:"level"`
	Semester   string `db:"semester"`
}

// CourseScope is the (department, level, semester) triple a run is pinned to.
type CourseScope struct {
	Department string
	Level      int
	Semester   string
}

// ResourceMetadata is a row of the resources table.
type ResourceMetadata struct {
	CourseID       int64          `db:"course_id"`
	UploaderID     string         `db:"uploader_firebase_uid"`
	StoragePath    string         `db:"storage_path"`
	MimeType       string         `db:"mime_type"`
	SizeBytes      int64          `db:"size_bytes"`
	FileType       FileType       `db:"file_type"`
	ApprovalStatus ApprovalStatus `db:"approval_status"`
}

// RunSummary counts what happened to the files of one run.
type RunSummary struct {
	Found    int
	Inserted int
	Skipped  int
}
