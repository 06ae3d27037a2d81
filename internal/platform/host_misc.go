package platform

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"github.com/elastic/go-sysinfo"
	"github.com/jaypipes/ghw"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	xcpu "golang.org/x/sys/cpu"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// staticFacts are collected once; they cannot change while the process runs.
type staticFacts struct {
	cpuModel       string
	cpuCores       string
	graphics       string
	kernelArch     string
	virtualization string
	err            map[MiscID]error
}

func (h *Host) collectStatic() staticFacts {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	f := staticFacts{err: make(map[MiscID]error)}

	if infos, err := cpu.InfoWithContext(ctx); err != nil || len(infos) == 0 {
		f.err[MiscCPUModel] = orUnsupported(err)
	} else {
		f.cpuModel = strings.TrimSpace(infos[0].ModelName)
	}

	physical, perr := cpu.CountsWithContext(ctx, false)
	logical, lerr := cpu.CountsWithContext(ctx, true)
	if perr != nil || lerr != nil {
		f.err[MiscCPUCores] = orUnsupported(perr)
	} else {
		f.cpuCores = fmt.Sprintf("%d physical, %d logical", physical, logical)
	}

	if info, err := host.InfoWithContext(ctx); err != nil {
		f.err[MiscPlatform64Bit] = err
		f.err[MiscVirtualization] = err
	} else {
		f.kernelArch = info.KernelArch
		f.virtualization = "None"
		if info.VirtualizationSystem != "" {
			f.virtualization = info.VirtualizationSystem
			if info.VirtualizationRole != "" {
				f.virtualization += " (" + info.VirtualizationRole + ")"
			}
		}
	}

	if gpus, err := ghw.GPU(); err != nil {
		f.err[MiscGraphics] = err
	} else {
		var cards []string
		for _, card := range gpus.GraphicsCards {
			name := card.Address
			if di := card.DeviceInfo; di != nil && di.Vendor != nil {
				name = di.Vendor.Name
				if di.Product != nil && di.Product.Name != "" {
					name += " " + di.Product.Name
				}
			}
			cards = append(cards, name)
		}
		if len(cards) == 0 {
			f.err[MiscGraphics] = ErrUnsupported
		}
		f.graphics = strings.Join(cards, "; ")
	}

	return f
}

func orUnsupported(err error) error {
	if err != nil {
		return err
	}
	return ErrUnsupported
}

var arch64 = map[string]bool{
	"x86_64": true, "amd64": true, "aarch64": true, "arm64": true, "ppc64": true,
	"ppc64le": true, "s390x": true, "riscv64": true, "loongarch64": true, "mips64": true,
}

// Misc returns a miscellaneous platform fact. MiscFullHostName is resolved
// through FullHostName only.
func (h *Host) Misc(id MiscID) (string, error) {
	switch id {
	case MiscAppName:
		return filepath.Base(os.Args[0]), nil
	case MiscExecutable:
		return os.Executable()
	case MiscProcessID:
		return strconv.Itoa(os.Getpid()), nil
	case MiscGoVersion:
		return sysinfo.Go().Version, nil
	case MiscProcess64Bit:
		return YesNo(strconv.IntSize == 64), nil
	case MiscHasStderr:
		return YesNo(term.IsTerminal(int(os.Stderr.Fd()))), nil
	case MiscPathSeparator:
		return string(os.PathSeparator), nil
	case MiscUserID:
		uid := os.Getuid()
		if uid < 0 {
			return "", ErrUnsupported
		}
		return strconv.Itoa(uid), nil
	case MiscUserName:
		u, err := user.Current()
		if err != nil {
			return "", err
		}
		if u.Name != "" && u.Name != u.Username {
			return fmt.Sprintf("%s (%s)", u.Username, u.Name), nil
		}
		return u.Username, nil
	case MiscSystemEncoding:
		return localeEncoding(h.locale()), nil
	case MiscSystemLanguage:
		return languageName(h.locale())
	case MiscHostName:
		return os.Hostname()
	case MiscFullHostName:
		return "", fmt.Errorf("full host name is resolved asynchronously: %w", ErrUnsupported)
	case MiscCPUFeatures:
		return cpuFeatures(), nil
	case MiscLittleEndian:
		return YesNo(!xcpu.IsBigEndian), nil
	case MiscColourProfile:
		return h.profile, nil
	case MiscDarkBackground:
		return YesNo(h.dark), nil
	case MiscSessionType:
		return nonEmpty(h.SessionType())
	case MiscDesktop:
		return nonEmpty(h.getenv("XDG_CURRENT_DESKTOP"))
	case MiscCPUModel, MiscCPUCores, MiscGraphics, MiscVirtualization, MiscPlatform64Bit:
		return h.staticFact(id)
	}
	return h.sysFact(id)
}

func (h *Host) staticFact(id MiscID) (string, error) {
	f := h.static()
	if err := f.err[id]; err != nil {
		return "", err
	}
	switch id {
	case MiscCPUModel:
		return f.cpuModel, nil
	case MiscCPUCores:
		return f.cpuCores, nil
	case MiscGraphics:
		return f.graphics, nil
	case MiscVirtualization:
		return f.virtualization, nil
	case MiscPlatform64Bit:
		return YesNo(arch64[f.kernelArch]), nil
	}
	return "", ErrUnsupported
}

// sysFact answers the queries backed by go-sysinfo's host view.
func (h *Host) sysFact(id MiscID) (string, error) {
	sh, err := h.sysHost()
	if err != nil {
		return "", fmt.Errorf("host info: %w", err)
	}
	info := sh.Info()

	switch id {
	case MiscOSDescription:
		if info.OS == nil {
			return "", ErrUnsupported
		}
		desc := strings.TrimSpace(info.OS.Name + " " + info.OS.Version)
		if info.OS.Codename != "" {
			desc += " (" + info.OS.Codename + ")"
		}
		return desc, nil
	case MiscOSVersion:
		if info.OS == nil {
			return "", ErrUnsupported
		}
		return fmt.Sprintf("%d.%d.%d", info.OS.Major, info.OS.Minor, info.OS.Patch), nil
	case MiscKernelVersion:
		return nonEmpty(info.KernelVersion)
	case MiscArchitecture:
		if info.NativeArchitecture != "" {
			return info.NativeArchitecture, nil
		}
		return nonEmpty(info.Architecture)
	case MiscContainerized:
		if info.Containerized == nil {
			return "", ErrUnsupported
		}
		return YesNo(*info.Containerized), nil
	case MiscTotalMemory:
		mem, err := sh.Memory()
		if err != nil {
			return "", err
		}
		return units.BytesSize(float64(mem.Total)), nil
	case MiscUptime:
		return units.HumanDuration(info.Uptime()), nil
	case MiscTimezone:
		return fmt.Sprintf("%s (UTC%+03d:%02d)", info.Timezone,
			info.TimezoneOffsetSec/3600, abs(info.TimezoneOffsetSec%3600)/60), nil
	}
	return "", fmt.Errorf("misc %d: %w", id, ErrUnsupported)
}

func (h *Host) locale() string {
	for _, env := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := h.getenv(env); v != "" {
			return v
		}
	}
	return "C"
}

// localeEncoding extracts the codeset of a POSIX locale name such as
// en_GB.UTF-8@euro.
func localeEncoding(locale string) string {
	locale, _, _ = strings.Cut(locale, "@")
	if _, codeset, ok := strings.Cut(locale, "."); ok && codeset != "" {
		return codeset
	}
	return "US-ASCII"
}

func languageName(locale string) (string, error) {
	name, _, _ := strings.Cut(locale, ".")
	name, _, _ = strings.Cut(name, "@")
	if name == "C" || name == "POSIX" {
		return "", fmt.Errorf("locale %s: %w", name, ErrUnsupported)
	}
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("locale %q: %w", locale, err)
	}
	return fmt.Sprintf("%s (%s)", display.English.Tags().Name(tag), tag), nil
}

func cpuFeatures() string {
	var feats []string
	add := func(ok bool, name string) {
		if ok {
			feats = append(feats, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(xcpu.X86.HasSSE42, "SSE4.2")
		add(xcpu.X86.HasAVX, "AVX")
		add(xcpu.X86.HasAVX2, "AVX2")
		add(xcpu.X86.HasAVX512F, "AVX-512F")
		add(xcpu.X86.HasAES, "AES")
		add(xcpu.X86.HasFMA, "FMA")
	case "arm64":
		add(xcpu.ARM64.HasASIMD, "ASIMD")
		add(xcpu.ARM64.HasAES, "AES")
		add(xcpu.ARM64.HasSHA2, "SHA2")
		add(xcpu.ARM64.HasCRC32, "CRC32")
		add(xcpu.ARM64.HasATOMICS, "LSE")
		add(xcpu.ARM64.HasSVE, "SVE")
	}
	if len(feats) == 0 {
		return "None detected"
	}
	return strings.Join(feats, ", ")
}

func nonEmpty(s string) (string, error) {
	if s == "" {
		return "", ErrUnsupported
	}
	return s, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
