package whitelist

import "embed"

//go:embed resources/process_whitelist.txt resources/service_whitelist.txt
var resources embed.FS

// ProcessWhitelist loads the embedded list of known-good process image
// paths, rewriting a literal C-drive Windows prefix to windowsDir so the
// list matches regardless of install drive.
func ProcessWhitelist(windowsDir string) (*List, error) {
	return Load(resources, "resources/process_whitelist.txt",
		Rewrite{From: `c:\windows\`, To: windowsDir + `\`})
}

// ServiceWhitelist loads the embedded list of known-good
// "<group>;<filepath>;<name>;<display>" service fingerprints.
func ServiceWhitelist(windowsDir string) (*List, error) {
	return Load(resources, "resources/service_whitelist.txt",
		Rewrite{From: `c:\windows\`, To: windowsDir + `\`})
}
