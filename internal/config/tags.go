package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
)

type parseOptions struct {
	Parent                  *parseOptions
	EnvPrefix               string
	EnvIsDisabled           bool
	FlagPrefix              string
	Category                string
	AlreadyHasDefaultValues bool
	RequiredByDefault       bool
}

// Для приложений с yaml конфигом + env
var CommonParseOptions = parseOptions{
	AlreadyHasDefaultValues: true,
	RequiredByDefault:       true,
}

// Для приложений только с env
var DefaultParseOptions = parseOptions{
	RequiredByDefault: true,
}

var (
	tagNameEnv        = "env"        // меняет часть после префикса для env. env:"-" убирает ввод через env
	tagNameEnvPrefix  = "envprefix"  // перезаписывает префикс env (envprefix:"APP2", envprefix:"")
	tagNameFlag       = "flag"       // меняет часть после префикса для флага. flag:"-" убирает флаг
	tagNameFlagPrefix = "flagprefix" // перезаписывает префикс флага
	tagNameCLI        = "cli"        // hidden,required,optional через запятую. cli:"-" игнорирует поле
	tagNameUsage      = "usage"      // описание в help
	tagNameDefault    = "default"    // дефолт значение (default:"10")
	tagNameCategory   = "category"   // категория в help
)

var durationTypes = []reflect.Type{
	reflect.TypeOf(time.Duration(0)),
	reflect.TypeOf(duration(0)),
}

// CommonHelp разбирает флаги и env поверх cfg и завершает процесс, если был вызван help.
//
// Пример:
//
//	CommonHelp("luck_xit", "Запустить сервер", "", &cfg, CommonParseOptions)
func CommonHelp(name, usage, description string, cfg any, opts parseOptions) error {
	helpWasCalled, err := WorkHelp(name, usage, description, cfg, opts)
	if helpWasCalled && err == nil {
		os.Exit(0)
	}

	return err
}

func WorkHelp(name, usage, description string, cfg any, opts parseOptions) (bool, error) {
	flags, err := parseFlags(cfg, opts)
	if err != nil {
		return false, fmt.Errorf("ParseFlags: %w", err)
	}

	var helpWasCalled bool

	original := cli.HelpPrinterCustom
	cli.HelpPrinterCustom = func(w io.Writer, templ string, data any, customFunc map[string]any) {
		helpWasCalled = true

		original(w, templ, data, customFunc)
	}

	defer func() {
		cli.HelpPrinterCustom = original
	}()

	cmd := &cli.Command{
		Name:        name,
		Usage:       usage,
		Description: description,
		Flags:       flags,
		Action: func(context.Context, *cli.Command) error {
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		return helpWasCalled, fmt.Errorf("cmd.Run: %w", err)
	}

	return helpWasCalled, nil
}

func parseFlags(c any, opts parseOptions) ([]cli.Flag, error) {
	if c == nil {
		return nil, errors.New("config must not be nil")
	}

	v := reflect.ValueOf(c)

	if v.Kind() != reflect.Ptr {
		return nil, errors.New("config must be pointer")
	}

	v = v.Elem()

	if v.Kind() != reflect.Struct {
		return nil, errors.New("config must be struct")
	}

	t := v.Type()

	flags := make([]cli.Flag, 0, v.NumField())

	for i := range v.NumField() {
		res, err := parseField(t.Field(i), v.Field(i), opts)
		if err != nil {
			return nil, err
		}

		flags = append(flags, res...)
	}

	return flags, nil
}

type flagOptions[T any] struct {
	Value T
	Dest  *T
	flagOptionsCommon
}

type flagOptionsCommon struct {
	Name       string
	Category   string
	HasValue   bool
	Env        string
	DisableEnv bool
	Usage      string
	Required   bool
	Hidden     bool
}

// fieldSource откуда брать начальное значение флага
type fieldSource struct {
	common     flagOptionsCommon
	useCurrent bool // значение уже прочитано из yaml
	def        string
	hasDef     bool
}

// nolint: gocyclo, cyclop
func parseField(
	t reflect.StructField,
	v reflect.Value,
	opts parseOptions,
) ([]cli.Flag, error) {
	var flagPrefix, envPrefix string

	if v, ok := t.Tag.Lookup(tagNameFlagPrefix); ok {
		opts.FlagPrefix = v
	}

	if v, ok := t.Tag.Lookup(tagNameEnvPrefix); ok {
		opts.EnvPrefix = v
	}

	if opts.FlagPrefix != "" {
		flagPrefix = opts.FlagPrefix + "-"
	}

	if opts.EnvPrefix != "" {
		envPrefix = opts.EnvPrefix + "_"
	}

	argName, ok := t.Tag.Lookup(tagNameFlag)
	switch {
	case !ok:
		argName = flagPrefix + toKebabCase(t.Name)
	case argName == "-":
		argName = ""
	default:
		argName = flagPrefix + argName
	}

	disableEnv := opts.EnvIsDisabled

	var envName string

	if !disableEnv {
		envName, ok = t.Tag.Lookup(tagNameEnv)

		switch {
		case !ok:
			envName = envPrefix + toScreamingSnakeCase(t.Name)
		case envName == "-":
			disableEnv = true
		default:
			envName = envPrefix + envName
		}
	}

	isStruct := v.Kind() == reflect.Struct

	category, ok := t.Tag.Lookup(tagNameCategory)
	switch {
	case ok && !isStruct:
		return nil, fmt.Errorf("category tag is allowed only for structures")
	case !ok && isStruct:
		category = t.Name
	case !ok:
		category = opts.Category
	}

	if !v.CanSet() {
		return nil, fmt.Errorf("private field: %s", t.Name)
	}

	src := fieldSource{}
	if !opts.AlreadyHasDefaultValues {
		src.def, src.hasDef = t.Tag.Lookup(tagNameDefault)
	}

	usage, _ := t.Tag.Lookup(tagNameUsage)

	var cliRequired, cliOptional, cliHidden bool

	cliOptionsStr, _ := t.Tag.Lookup(tagNameCLI)
	if cliOptionsStr == "-" {
		return nil, nil
	}

	if cliOptionsStr != "" {
		cliOptions := strings.Split(cliOptionsStr, ",")
		cliRequired = slices.Contains(cliOptions, "required")
		cliOptional = slices.Contains(cliOptions, "optional")
		cliHidden = slices.Contains(cliOptions, "hidden")
	}

	if !cliOptional {
		cliRequired = cliRequired || opts.RequiredByDefault
	}

	if cliHidden && cliRequired {
		return nil, fmt.Errorf("flag %v: must not be hidden and required at the same time, add \"optional\" to cli tag", t.Name)
	}

	configValueIsZero := cliRequired && v.IsZero() && v.Kind() != reflect.Bool && opts.AlreadyHasDefaultValues
	src.useCurrent = opts.AlreadyHasDefaultValues && !configValueIsZero

	src.common = flagOptionsCommon{
		Name:       argName,
		Category:   category,
		Env:        envName,
		DisableEnv: disableEnv,
		Usage:      usage,
		Required:   cliRequired,
		Hidden:     cliHidden,
	}

	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	addr := v.Addr()

	// duration и time.Duration имеют Kind int64, поэтому сверяем сам тип
	if slices.Contains(durationTypes, v.Type()) {
		return bind(addr, src, time.ParseDuration, durationFlag)
	}

	// "type T1 T2" конвертируется в T2 внутри bind
	switch v.Kind() {
	case reflect.Struct:
		envPrefixFromTag, hasEnvPrefixFromTag := t.Tag.Lookup(tagNameEnv)
		if hasEnvPrefixFromTag {
			envPrefix += envPrefixFromTag
		} else {
			envPrefix += toScreamingSnakeCase(t.Name)
		}

		flagPrefixFromTag, hasFlagPrefixFromTag := t.Tag.Lookup(tagNameFlag)
		if hasFlagPrefixFromTag {
			flagPrefix += flagPrefixFromTag
		} else {
			flagPrefix += toKebabCase(t.Name)
		}

		return parseFlags(addr.Interface(), parseOptions{
			Parent:                  &opts,
			Category:                category,
			EnvPrefix:               envPrefix,
			EnvIsDisabled:           opts.EnvIsDisabled || envPrefixFromTag == "-",
			FlagPrefix:              flagPrefix,
			RequiredByDefault:       cliRequired,
			AlreadyHasDefaultValues: opts.AlreadyHasDefaultValues,
		})

	case reflect.Slice:
		if sv := v.Type().Elem().Kind(); sv != reflect.String {
			return nil, fmt.Errorf("slice type %v is unsupported", sv)
		}

		return bind(addr, src, parseStrings, stringSliceFlag)

	case reflect.String:
		return bind(addr, src, parseString, stringFlag)

	case reflect.Bool:
		return bind(addr, src, strconv.ParseBool, boolFlag)

	case reflect.Int:
		return bind(addr, src, strconv.Atoi, intFlag)

	case reflect.Int64:
		return bind(addr, src, parseInt64, int64Flag)

	case reflect.Uint:
		return bind(addr, src, parseUint, uintFlag)

	case reflect.Uint16:
		return bind(addr, src, parseUint16, uint16Flag)

	case reflect.Float64:
		return bind(addr, src, parseFloat64, float64Flag)

	default:
		return nil, fmt.Errorf("type %v is unsupported", v.Type())
	}
}

func bind[T any](
	addr reflect.Value,
	src fieldSource,
	parse func(string) (T, error),
	build func(flagOptions[T]) cli.Flag,
) ([]cli.Flag, error) {
	dst, ok := addr.Convert(reflect.TypeOf((*T)(nil))).Interface().(*T)
	if !ok {
		return nil, fmt.Errorf("failed to cast %T: %s", dst, src.common.Name)
	}

	fo := flagOptions[T]{
		flagOptionsCommon: src.common,
		Dest:              dst,
	}

	switch {
	case src.useCurrent:
		fo.HasValue = true
		fo.Value = *dst
	case src.hasDef:
		v, err := parse(src.def)
		if err != nil {
			return nil, fmt.Errorf("invalid default value for %s: %w", src.common.Name, err)
		}

		fo.HasValue = true
		fo.Value = v
	}

	if fo.HasValue {
		fo.Required = false
	}

	return []cli.Flag{build(fo)}, nil
}

func parseString(s string) (string, error) {
	return s, nil
}

func parseStrings(s string) ([]string, error) {
	return strings.Split(s, ","), nil
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 0)

	return uint(v), err
}

func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)

	return uint16(v), err
}

func parseFloat64(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func sources(opts flagOptionsCommon) cli.ValueSourceChain {
	if opts.DisableEnv {
		return cli.ValueSourceChain{}
	}

	return cli.EnvVars(opts.Env)
}

func stringFlag(opts flagOptions[string]) cli.Flag {
	return &cli.StringFlag{
		Name: opts.Name, Category: opts.Category, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden,
		Value: opts.Value, Destination: opts.Dest, Sources: sources(opts.flagOptionsCommon),
	}
}

func stringSliceFlag(opts flagOptions[[]string]) cli.Flag {
	return &cli.StringSliceFlag{
		Name: opts.Name, Category: opts.Category, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden,
		Value: opts.Value, Destination: opts.Dest, Sources: sources(opts.flagOptionsCommon),
	}
}

// bool флаг никогда не бывает обязательным
func boolFlag(opts flagOptions[bool]) cli.Flag {
	return &cli.BoolFlag{
		Name: opts.Name, Category: opts.Category, Usage: opts.Usage, Hidden: opts.Hidden,
		Value: opts.Value, Destination: opts.Dest, Sources: sources(opts.flagOptionsCommon),
	}
}

func intFlag(opts flagOptions[int]) cli.Flag {
	return &cli.IntFlag{
		Name: opts.Name, Category: opts.Category, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden,
		Value: opts.Value, Destination: opts.Dest, Sources: sources(opts.flagOptionsCommon),
	}
}

func int64Flag(opts flagOptions[int64]) cli.Flag {
	return &cli.Int64Flag{
		Name: opts.Name, Category: opts.Category, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden,
		Value: opts.Value, Destination: opts.Dest, Sources: sources(opts.flagOptionsCommon),
	}
}

func uintFlag(opts flagOptions[uint]) cli.Flag {
	return &cli.UintFlag{
		Name: opts.Name, Category: opts.Category, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden,
		Value: opts.Value, Destination: opts.Dest, Sources: sources(opts.flagOptionsCommon),
	}
}

func uint16Flag(opts flagOptions[uint16]) cli.Flag {
	return &cli.Uint16Flag{
		Name: opts.Name, Category: opts.Category, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden,
		Value: opts.Value, Destination: opts.Dest, Sources: sources(opts.flagOptionsCommon),
	}
}

func float64Flag(opts flagOptions[float64]) cli.Flag {
	return &cli.FloatFlag{
		Name: opts.Name, Category: opts.Category, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden,
		Value: opts.Value, Destination: opts.Dest, Sources: sources(opts.flagOptionsCommon),
	}
}

func durationFlag(opts flagOptions[time.Duration]) cli.Flag {
	return &cli.DurationFlag{
		Name: opts.Name, Category: opts.Category, Usage: opts.Usage, Required: opts.Required, Hidden: opts.Hidden,
		Value: opts.Value, Destination: opts.Dest, Sources: sources(opts.flagOptionsCommon),
	}
}

var (
	matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCap   = regexp.MustCompile("([a-z0-9])([A-Z])")
)

func toSnakeCase(str string) string {
	snake := matchFirstCap.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")

	return strings.ToLower(snake)
}

func toKebabCase(str string) string {
	return strings.ReplaceAll(toSnakeCase(str), "_", "-")
}

func toScreamingSnakeCase(str string) string {
	return strings.ToUpper(toSnakeCase(str))
}
