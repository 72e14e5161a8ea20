// Package fs abstracts the filesystem operations used to publish output
// documents, so tests can inject write, sync, close and rename failures.
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test wrapper that fails operations on demand
//
// Production code uses fs.Default:
//
//	f, err := fs.Default.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
//
// Tests wrap it:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp", fs.Fault{FailAfterBytes: 1024})
package fs
