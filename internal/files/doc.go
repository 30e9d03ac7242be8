// Package files provides the file system side of the command line tools.
//
// Discovery finds survey exports (.csv and .xlsx) in a directory so a tool
// can be pointed at a folder instead of a file.
//
// Manager writes finished session artifacts to disk. Relative paths resolve
// into the reports directory, and every file is written to a temporary name
// first and renamed into place, so a reader never sees a half-written report.
//
// Example usage:
//
//	latest, err := files.LatestSurveyFile("/srv/exports")
//	if err != nil {
//	    return err
//	}
//
//	manager := files.NewManager(paths, logger)
//	written, err := manager.WriteArtifacts("", sess.Artifacts())
package files
