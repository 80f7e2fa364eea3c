// Package stacks serves static files and directory listings for mounted
// filesystem directories.
//
// A Resolver maps request URIs onto a directory and decides what to answer:
// the file itself, a redirect to the trailing-slash form of a directory, an
// index file, or an ls -l style HTML listing. Files carry a weak ETag built
// from device, inode and modification time and honour If-None-Match and
// If-Modified-Since with 304 responses.
//
// # Key Components
//
//   - Resolver: path translation and request dispatch for one mount
//   - Lister: reads a directory into DirEntry values with permissions,
//     owner and group names, human readable sizes and symlink targets
//   - FileSystem, Accounts, MIMETypes: system collaborators (see the
//     filesystem package for the OS implementation)
//   - PermissionString, HumanSize: pure formatting helpers used by listings
//
// # Example Usage
//
//	store := filesystem.New()
//	resolver, err := stacks.NewResolver(stacks.DirConfig{
//	    URLPrefix:    "/files",
//	    Root:         stacks.StaticRoot("/srv/files"),
//	    IndexFiles:   []string{"index.html"},
//	    AllowListing: true,
//	}, store, filesystem.NewAccounts(), filesystem.NewMIMETable())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp := resolver.Handle(r, r.URL.Path) // nil means "not here"
//
// See the http package for the chi based server that mounts resolvers.
package stacks
