package sim

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/scudo/options"
	"golang.org/x/exp/slog"
)

type flags struct {
	deleteSizeMismatch  bool
	zeroContents        bool
	patternFillContents bool
	mayReturnNull       bool
	releaseIntervalMs   int64
}

func defaultFlags() flags {
	return flags{
		deleteSizeMismatch: true,
		releaseIntervalMs:  -1,
	}
}

func parseFlags(logger *slog.Logger, s string) (flags, error) {
	result := defaultFlags()

	pairs, err := options.ParseFlags(s)
	if err != nil {
		return result, errors.Wrap(err, "reading default options")
	}

	for _, pair := range pairs {
		var target *bool
		switch pair.Key {
		case "delete_size_mismatch":
			target = &result.deleteSizeMismatch
		case "zero_contents":
			target = &result.zeroContents
		case "pattern_fill_contents":
			target = &result.patternFillContents
		case "allocator_may_return_null":
			target = &result.mayReturnNull
		case "release_to_os_interval_ms":
			result.releaseIntervalMs, err = strconv.ParseInt(pair.Value, 0, 32)
			if err != nil {
				return result, errors.Wrapf(err, "invalid value for %s", pair.Key)
			}
			continue
		default:
			logger.Warn("unrecognized engine option", slog.String("Key", pair.Key), slog.String("Value", pair.Value))
			continue
		}

		*target, err = strconv.ParseBool(pair.Value)
		if err != nil {
			return result, errors.Wrapf(err, "invalid value for %s", pair.Key)
		}
	}

	return result, nil
}
