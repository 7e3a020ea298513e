package file

import "os"

// syncDir fsyncs dir so a just-created file's directory entry is
// durable (§4.7 "sync-on-create"). Best-effort: some platforms/file
// systems reject O_RDONLY+Sync on a directory, in which case this is a
// silent no-op rather than a fatal error — the file's own contents are
// still fsynced by the writer regardless.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	d.Sync()
}
