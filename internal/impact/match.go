package impact

import "strings"

// NormalizePath converts backslash separators to forward slashes. It is a
// plain string transform: ".." segments, doubled slashes and symlinks are left
// alone.
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// IsUnderPackage reports whether filePath lies inside the directory
// packagePath. A path equal to packagePath counts as inside. The "/" boundary
// check keeps "pkg" from matching "pkg-extra/file".
func IsUnderPackage(filePath, packagePath string) bool {
	file := NormalizePath(filePath)
	pkg := NormalizePath(packagePath)

	return file == pkg || strings.HasPrefix(file, pkg+"/")
}
