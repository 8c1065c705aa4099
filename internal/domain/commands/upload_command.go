package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/domain/repositories"
)

const gitDir = ".git"

// Upload is the interface for the directory upload command.
type Upload interface {
	Execute(ctx context.Context, provider repositories.ProviderRepository, opts UploadOptions) (*UploadResult, error)
}

// UploadOptions selects the local directory and where its files land in the repository.
type UploadOptions struct {
	Owner      string
	Repo       string
	LocalPath  string
	TargetPath string
	Branch     string
	Message    string
}

// UploadFailure is a file that could not be created.
type UploadFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// UploadResult lists the repository paths created and the ones that failed.
type UploadResult struct {
	Uploaded []string        `json:"uploaded"`
	Ignored  []string        `json:"ignored,omitempty"`
	Failed   []UploadFailure `json:"failed,omitempty"`
}

// UploadCommand copies a local directory into a repository, one CreateFile call per file.
// Paths matched by .gitignore files and the .git directory are skipped.
type UploadCommand struct{}

// NewUploadCommand creates an UploadCommand reading from the host filesystem.
func NewUploadCommand() *UploadCommand {
	return &UploadCommand{}
}

// Execute walks opts.LocalPath and uploads every file. Files are uploaded one at a time;
// a failed file is recorded and the walk continues. The error is non-nil only when the
// directory cannot be read or when no file could be uploaded.
func (it *UploadCommand) Execute(
	ctx context.Context,
	provider repositories.ProviderRepository,
	opts UploadOptions,
) (*UploadResult, error) {
	fs := osfs.New(opts.LocalPath)
	info, err := fs.Stat(".")
	if err != nil || !info.IsDir() {
		return nil, entities.NewInvalidInputError(provider.DisplayName(),
			fmt.Errorf("%q is not a readable directory", opts.LocalPath))
	}

	patterns, err := gitignore.ReadPatterns(fs, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore rules of %q: %w", opts.LocalPath, err)
	}
	matcher := gitignore.NewMatcher(patterns)

	result := &UploadResult{Uploaded: []string{}}
	var lastErr error
	walkErr := util.Walk(fs, ".", func(name string, file os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if name == "." {
			return nil
		}
		relative := filepath.ToSlash(name)
		parts := strings.Split(relative, "/")
		if file.IsDir() {
			if file.Name() == gitDir || matcher.Match(parts, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if matcher.Match(parts, false) {
			result.Ignored = append(result.Ignored, relative)
			return nil
		}

		target := path.Join(opts.TargetPath, relative)
		if uploadErr := it.uploadFile(ctx, fs, provider, opts, relative, target); uploadErr != nil {
			logger.Warnf("Failed to upload %q to %s/%s: %v", relative, opts.Owner, opts.Repo, uploadErr)
			result.Failed = append(result.Failed, UploadFailure{Path: target, Error: uploadErr.Error()})
			lastErr = uploadErr
			return nil
		}
		result.Uploaded = append(result.Uploaded, target)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", opts.LocalPath, walkErr)
	}

	logger.Infof("Uploaded %d files to %s/%s (%d ignored, %d failed)",
		len(result.Uploaded), opts.Owner, opts.Repo, len(result.Ignored), len(result.Failed))
	switch {
	case len(result.Uploaded) == 0 && lastErr != nil:
		return result, lastErr
	case len(result.Uploaded) == 0:
		return result, entities.NewInvalidInputError(provider.DisplayName(),
			fmt.Errorf("%q: %w", opts.LocalPath, ErrEmptyDirectory))
	}
	return result, nil
}

func (it *UploadCommand) uploadFile(
	ctx context.Context,
	fs billy.Filesystem,
	provider repositories.ProviderRepository,
	opts UploadOptions,
	relative, target string,
) error {
	content, err := util.ReadFile(fs, relative)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", relative, err)
	}
	message := opts.Message
	if message == "" {
		message = "Upload " + target
	}
	_, err = provider.CreateFile(ctx, opts.Owner, opts.Repo, entities.FileInput{
		Path:    target,
		Content: string(content),
		Message: message,
		Branch:  opts.Branch,
	})
	return err
}

// ErrEmptyDirectory is returned when a directory holds nothing to upload.
var ErrEmptyDirectory = errors.New("directory has no files to upload")
