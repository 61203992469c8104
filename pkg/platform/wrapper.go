// SPDX-License-Identifier: MPL-2.0

package platform

// Wrapper script file names checked on disk during scanning. Both spellings
// are tracked because a repository committed on Windows may carry only the
// .bat/.cmd variant.
const (
	GradleWrapperUnix    = "gradlew"
	GradleWrapperWindows = "gradlew.bat"
	MavenWrapperUnix     = "mvnw"
	MavenWrapperWindows  = "mvnw.cmd"
)

// WrapperInvocation returns the command used to launch a project-local
// wrapper script for the given OS (a runtime.GOOS value). POSIX shells do
// not search the working directory, so the Unix form carries the explicit
// ./ prefix; cmd.exe resolves the bare .bat/.cmd name.
func WrapperInvocation(goos, unixName, windowsName string) string {
	if goos == Windows {
		return windowsName
	}
	return "./" + unixName
}
