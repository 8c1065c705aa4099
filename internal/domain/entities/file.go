package entities

// FileEntry is a file, directory, symlink or submodule in a repository tree.
type FileEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	SHA         string `json:"sha"`
	Size        int64  `json:"size"`
	Type        string `json:"type"`
	Content     string `json:"content,omitempty"` // decoded
	Encoding    string `json:"encoding,omitempty"`
	HTMLURL     string `json:"html_url,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
	Raw         Raw    `json:"raw"`
}

// FileWrite is the outcome of a create, update or delete through the contents API.
type FileWrite struct {
	File   *FileEntry `json:"file,omitempty"`
	Commit Commit     `json:"commit"`
	Raw    Raw        `json:"raw"`
}

// FileInput addresses a single file change. SHA is the blob being replaced and is
// required by both backends for updates and deletes.
type FileInput struct {
	Path    string `json:"path"`
	Content string `json:"content,omitempty"` // plain text, encoded by the adapter
	Message string `json:"message"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}
