package util

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/bioinf-mcb/mdeepfri/cmap"
	"github.com/bioinf-mcb/mdeepfri/seq"
)

var (
	FlagCpu = runtime.NumCPU()

	FlagThreshold = cmap.DefaultThreshold
	FlagMaxLen    = cmap.DefaultMaxLen
	FlagGenerated = cmap.DefaultGenerated

	FlagMinLen = seq.MinQueryLength
	FlagMaxQueryLen = seq.MaxQueryLength

	FlagEValue      = 1e-4
	FlagSensitivity = 5.7
	FlagMinIdent    = 0.3
	FlagTopK        = 5

	FlagVerbose = false
)

func init() {
	log.SetFlags(0)
}

type commonFlag struct {
	set, init func()
	use       bool
}

var commonFlags = map[string]*commonFlag{
	"cpu": {
		set: func() {
			flag.IntVar(&FlagCpu, "cpu", FlagCpu,
				"The max number of CPUs to use.")
		},
		init: func() {
			runtime.GOMAXPROCS(FlagCpu)
		},
	},
	"threshold": {
		set: func() {
			flag.Float64Var(&FlagThreshold, "threshold", FlagThreshold,
				"The contact distance threshold in angstroms.")
		},
	},
	"max-len": {
		set: func() {
			flag.IntVar(&FlagMaxLen, "max-len", FlagMaxLen,
				"The maximum number of residues taken from a structure.")
		},
	},
	"generated": {
		set: func() {
			flag.IntVar(&FlagGenerated, "generated", FlagGenerated,
				"The radius of generated local contacts for query residues\n"+
					"without a structural template.")
		},
	},
	"query-len": {
		set: func() {
			flag.IntVar(&FlagMinLen, "min-len", FlagMinLen,
				"The minimum query protein length.")
			flag.IntVar(&FlagMaxQueryLen, "max-query-len", FlagMaxQueryLen,
				"The maximum query protein length.")
		},
	},
	"search": {
		set: func() {
			flag.Float64Var(&FlagEValue, "evalue", FlagEValue,
				"The maximum e-value of the sequence search.")
			flag.Float64Var(&FlagSensitivity, "sensitivity", FlagSensitivity,
				"The sensitivity of the sequence search, in [1.0, 7.5].")
			flag.Float64Var(&FlagMinIdent, "min-ident", FlagMinIdent,
				"The minimum sequence identity of a usable hit.")
			flag.IntVar(&FlagTopK, "top-k", FlagTopK,
				"The number of best hits kept per query.")
		},
	},
	"verbose": {
		set: func() {
			flag.BoolVar(&FlagVerbose, "verbose", FlagVerbose,
				"When set, external tool output is shown.")
		},
	},
}

func FlagUse(names ...string) {
	for _, name := range names {
		commonFlags[name].use = true
	}
}

// Usage just calls `flag.Usage`. It's included here to avoid
// an extra import to `flag` just to call Usage.
func Usage() {
	flag.Usage()
}

// Arg just calls `flag.Arg`. It's included here to avoid
// an extra import to `flag` just to call Arg.
func Arg(i int) string {
	return flag.Arg(i)
}

// NArg just calls `flag.NArg`. It's included here to avoid
// an extra import to `flag` just to call NArg.
func NArg() int {
	return flag.NArg()
}

func FlagParse(positional string, desc string) {
	for _, fl := range commonFlags {
		if fl.use {
			fl.set()
		}
	}

	flag.Usage = func() {
		log.Printf("Usage: %s [flags] %s\n\n",
			path.Base(os.Args[0]), positional)
		if len(desc) > 0 {
			log.Printf("%s\n", desc)
		}
		flag.VisitAll(func(fl *flag.Flag) {
			var def string
			if len(fl.DefValue) > 0 {
				def = fmt.Sprintf(" (default: %s)", fl.DefValue)
			}

			usage := strings.Replace(fl.Usage, "\n", "\n    ", -1)
			log.Printf("-%s%s\n", fl.Name, def)
			log.Printf("    %s\n", usage)
		})
		os.Exit(1)
	}
	flag.Parse()

	for _, fl := range commonFlags {
		if fl.use && fl.init != nil {
			fl.init()
		}
	}
}
