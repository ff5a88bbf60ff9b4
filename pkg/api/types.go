package api

const (
	DefaultManifestFilename = "wallbuild.yaml"

	DefaultInterpreter = "python"
	DefaultInstaller   = "pip"
	DefaultTool        = "pyinstaller"
	DefaultEntry       = "wallpaper_downloader.py"
	DefaultName        = "SmartisanOS_Wallpaper_Downloader"
	DefaultIcon        = "hyw.ico"
	DefaultIndexURL    = "https://pypi.tuna.tsinghua.edu.cn/simple"
)

// DefaultPackages is the dependency set installed when the manifest does not
// list its own: the runtime libraries of the downloader plus the packager.
var DefaultPackages = []string{"requests", "pillow", "pyqt5", "pyinstaller"}

// Manifest is the wallbuild.yaml configuration format.
type Manifest struct {
	Context      map[string]any    `yaml:"context"`
	Interpreter  InterpreterConfig `yaml:"interpreter"`
	Dependencies DependencyConfig  `yaml:"dependencies"`
	Packaging    PackagingConfig   `yaml:"packaging"`

	// Set by the loader, not from YAML.
	Dir      string `yaml:"-"`
	FilePath string `yaml:"-"`
}

// InterpreterConfig names the interpreter whose presence gates the build.
type InterpreterConfig struct {
	Command string `yaml:"command"`
}

// DependencyConfig configures the dependency installation step.
type DependencyConfig struct {
	Installer string   `yaml:"installer"`
	Packages  []string `yaml:"packages"`
	IndexURL  string   `yaml:"indexURL"`
}

// PackagingConfig configures the packaging step.
type PackagingConfig struct {
	Tool      string         `yaml:"tool"`
	Entry     string         `yaml:"entry"`
	Name      string         `yaml:"name"`
	Icon      string         `yaml:"icon"`
	OneFile   *bool          `yaml:"onefile,omitempty"`  // default true
	Windowed  *bool          `yaml:"windowed,omitempty"` // default true
	Data      []DataResource `yaml:"data"`
	Clean     bool           `yaml:"clean"`
	ExtraArgs []string       `yaml:"extraArgs"`
}

// DataResource maps a source file (or glob) to a destination inside the bundle.
type DataResource struct {
	Source string `yaml:"source"`
	Dest   string `yaml:"dest"`
}

// IsOneFile reports whether single-file output is enabled (default true).
func (p *PackagingConfig) IsOneFile() bool {
	return p.OneFile == nil || *p.OneFile
}

// IsWindowed reports whether the console window is suppressed (default true).
func (p *PackagingConfig) IsWindowed() bool {
	return p.Windowed == nil || *p.Windowed
}

// DefaultManifest returns the built-in build configuration used when no
// wallbuild.yaml exists: package wallpaper_downloader.py with its icon into a
// single windowed executable, installing dependencies from the mirror.
func DefaultManifest(dir string) *Manifest {
	return &Manifest{
		Interpreter: InterpreterConfig{Command: DefaultInterpreter},
		Dependencies: DependencyConfig{
			Installer: DefaultInstaller,
			Packages:  append([]string(nil), DefaultPackages...),
			IndexURL:  DefaultIndexURL,
		},
		Packaging: PackagingConfig{
			Tool:  DefaultTool,
			Entry: DefaultEntry,
			Name:  DefaultName,
			Icon:  DefaultIcon,
			Data:  []DataResource{{Source: DefaultIcon, Dest: "."}},
			Clean: true,
		},
		Dir: dir,
	}
}
