package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"satchel/internal/archive"
)

// CheckArchiveLayout verifies that the archive root contains the manifest
// and the three content directories an unpacked backup is expected to have.
func CheckArchiveLayout(layout archive.Layout) []Result {
	results := []Result{checkFile("Archive manifest", layout.ManifestPath())}
	for _, dir := range []struct {
		name string
		path string
	}{
		{"Sections directory", layout.SectionsDir()},
		{"Activities directory", layout.ActivitiesDir()},
		{"Blob store", layout.BlobsDir()},
	} {
		results = append(results, checkDir(dir.name, dir.path))
	}
	return results
}

// CheckDirectoryAccess verifies that the directory exists and is readable,
// writable, and traversable.
func CheckDirectoryAccess(name, path string) Result {
	result := checkDir(name, path)
	if !result.Passed {
		return result
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies that the filesystem holding path has at least
// minBytes available to unprivileged writers.
func CheckFreeSpace(name, path string, minBytes uint64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < minBytes {
		return Result{Name: name, Detail: fmt.Sprintf("%s (%d MiB free, need %d MiB)", path, free>>20, minBytes>>20)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d MiB free)", path, free>>20)}
}

func checkDir(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

func checkFile(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}
