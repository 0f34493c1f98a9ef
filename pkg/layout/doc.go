// pkg/layout/doc.go

/*
Package layout decides where extpm puts things on disk.

Every installation lives under a single root:

	<root>/packages/<id>/<version>/   extracted package archives
	<root>/bin/                       launcher stubs

Identifiers and versions are lower-cased so the same package requested with
different casing maps to one directory. Launchers reference their entry point
relative to bin/, which keeps the whole root relocatable.

Basic Usage:

	l := layout.New("/home/me/.extpm")

	dir := l.InstallDir("Contoso.Widget", "2.0.0")
	// /home/me/.extpm/packages/contoso.widget/2.0.0

	stub := l.LauncherPath("ext-widget.exe")
	// /home/me/.extpm/bin/ext-widget (ext-widget.cmd on Windows)

	rel, _ := l.Relativize(filepath.Join(dir, "tools", "ext-widget.exe"))
	// ../packages/contoso.widget/2.0.0/tools/ext-widget.exe
*/
package layout
