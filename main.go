package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pedal-librarian/config"
	"pedal-librarian/debug"
	"pedal-librarian/library"
	"pedal-librarian/midi"
	"pedal-librarian/pedal"
	"pedal-librarian/session"
	"pedal-librarian/theme"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--debug" {
		if err := debug.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
		defer debug.Disable()
		args = args[1:]
	}

	if len(args) == 0 {
		usage()
		return
	}

	switch args[0] {
	case "devices":
		cmdDevices()
	case "profiles":
		cmdProfiles()
	case "identify":
		cmdIdentify(args[1:])
	case "check":
		cmdCheck(args[1:])
	case "bank":
		cmdBank(args[1:])
	case "presets":
		cmdPresets(args[1:])
	case "preset-delete":
		cmdPresetDelete(args[1:])
	case "favorite":
		cmdFavorite(args[1:])
	case "capture":
		cmdCapture(args[1:])
	case "set":
		cmdSet(args[1:])
	case "update":
		cmdUpdate(args[1:])
	case "trigger":
		cmdTrigger(args[1:])
	case "save-slot":
		cmdSaveSlot(args[1:])
	case "recall-slot":
		cmdRecallSlot(args[1:])
	case "recall":
		cmdRecall(args[1:])
	case "resync":
		cmdResync(args[1:])
	case "monitor":
		cmdMonitor(args[1:])
	case "autoconnect":
		cmdAutoconnect(args[1:])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("pedal-librarian - preset librarian for MIDI effect pedals")
	fmt.Println("")
	fmt.Println("Usage: pedal-librarian [--debug] <command>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  devices                                    list MIDI ports")
	fmt.Println("  profiles                                   list supported pedals")
	fmt.Println("  identify <port>                            send a device inquiry")
	fmt.Println("  check <port> <profile>                     judge whether the port matches the pedal")
	fmt.Println("  bank <profile>                             show the pedal's memory slots")
	fmt.Println("  presets [profile]                          list library presets")
	fmt.Println("  preset-delete <id>                         delete a library preset")
	fmt.Println("  favorite <id>                              toggle a preset's favorite mark")
	fmt.Println("  capture <profile> <name> [field=value ...] save a preset to the library")
	fmt.Println("  set <port> <profile> <field=value ...>     edit live parameters")
	fmt.Println("  update <port> <profile> <preset> <field=value ...>")
	fmt.Println("                                             change a preset and rewrite its slots")
	fmt.Println("  trigger <port> <profile> <name>            fire a momentary action")
	fmt.Println("  save-slot <port> <profile> <preset> <slot> [--yes]")
	fmt.Println("  recall-slot <port> <profile> <slot>        select a slot on the pedal")
	fmt.Println("  recall <port> <profile> <preset>           push a preset to the pedal")
	fmt.Println("  resync <port> <profile>                    rewrite every assigned slot")
	fmt.Println("  monitor [port profile]                     print decoded knob moves; with no")
	fmt.Println("                                             arguments, every autoConnect device")
	fmt.Println("  autoconnect <port> <on|off>                flag a saved device for monitor")
	fmt.Println("")
	fmt.Println("Pass - as <port> to reuse the last connected device.")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fatal("config: %v", err)
	}
	return cfg
}

func openLibrary(cfg *config.Config) (*library.FileStore, *library.Banks) {
	dir, err := cfg.LibraryPath()
	if err != nil {
		fatal("library: %v", err)
	}
	store, err := library.NewFileStore(dir)
	if err != nil {
		fatal("library: %v", err)
	}
	return store, library.NewBanks(store, pedal.Builtin())
}

func lookupProfile(typeTag string) *pedal.Profile {
	p, ok := pedal.Builtin().Lookup(typeTag)
	if !ok {
		fatal("unknown pedal type %q (try: %s)", typeTag, strings.Join(pedal.Builtin().Types(), ", "))
	}
	return p
}

// connect opens the port, warms up a session, routes inbound control
// changes into it, and remembers the port-to-pedal association.
func connect(cfg *config.Config, port string, profile *pedal.Profile) (*midi.Transport, *session.Session) {
	saved := cfg.SavedProfile(port)
	verdict := session.CheckMismatch(port, profile, saved, nil, pedal.Builtin())
	if verdict.Mismatch {
		fmt.Println(theme.Warn().Render("warning: " + verdict.Message))
	}

	channel := channelFor(cfg, port)
	t := midi.NewTransport()
	s, err := openSession(t, port, channel, profile)
	if err != nil {
		t.Close()
		fatal("connect %s: %v", port, err)
	}
	rememberDevice(cfg, port, profile, channel)
	return t, s
}

// openSession connects a wire to a port and routes hardware-originated
// control changes into a fresh session. Any Commander serves as the wire.
func openSession(wire midi.Commander, port string, channel uint8, profile *pedal.Profile) (*session.Session, error) {
	if err := wire.Connect(port, channel, profile.Type); err != nil {
		return nil, err
	}
	s := session.New(wire, profile, port)
	wire.SetInbound(func(dev string, control, value uint8) {
		s.HandleControlChange(control, value)
	})
	return s, nil
}

func channelFor(cfg *config.Config, port string) uint8 {
	if d := cfg.FindDevice(port); d != nil && d.Channel >= 1 && d.Channel <= 16 {
		return d.Channel
	}
	return 1
}

// rememberDevice persists the port-to-pedal association and marks the port
// as the last one used. An existing autoConnect flag survives the rewrite.
func rememberDevice(cfg *config.Config, port string, profile *pedal.Profile, channel uint8) {
	dev := config.DeviceConfig{PortName: port, ProfileType: profile.Type, Channel: channel}
	if existing := cfg.FindDevice(port); existing != nil {
		dev.AutoConnect = existing.AutoConnect
	}
	cfg.AddDevice(dev)
	cfg.UI.LastDevice = port
	if err := cfg.Save(); err != nil {
		debug.Log("main", "config save failed: %v", err)
	}
}

// resolvePort expands the "-" shorthand to the last connected port.
func resolvePort(cfg *config.Config, raw string) string {
	if raw != "-" {
		return raw
	}
	if cfg.UI.LastDevice == "" {
		fatal("no device connected yet; pass a port name")
	}
	return cfg.UI.LastDevice
}

// settle gives debounced edits time to reach the wire before teardown.
func settle() {
	time.Sleep(80 * time.Millisecond)
}

func cmdDevices() {
	cfg := loadConfig()
	ins, outs := midi.PortNames()
	if ins == nil && outs == nil {
		fatal("port scan timed out")
	}

	fmt.Println(theme.Title().Render("Output ports"))
	for _, name := range outs {
		line := "  " + name
		if saved := cfg.SavedProfile(name); saved != "" {
			line += theme.Dim().Render(fmt.Sprintf("  (%s)", saved))
		}
		fmt.Println(line)
	}
	fmt.Println(theme.Title().Render("Input ports"))
	for _, name := range ins {
		fmt.Println("  " + name)
	}
}

func cmdProfiles() {
	reg := pedal.Builtin()
	for _, typ := range reg.Types() {
		p, _ := reg.Lookup(typ)
		fmt.Printf("%-16s %s %s", p.Type, p.Manufacturer, p.Name)
		if p.Bank != nil {
			fmt.Printf("  (%d slots, save: %s)", p.Bank.TotalSlots(), p.Bank.Save)
		}
		fmt.Println()
	}
}

func cmdIdentify(args []string) {
	if len(args) < 1 {
		fatal("usage: identify <port>")
	}
	port := resolvePort(loadConfig(), strings.Join(args, " "))

	t := midi.NewTransport()
	defer t.Close()
	id, err := t.RequestIdentity(port, 2*time.Second)
	if err != nil {
		fatal("inquiry: %v", err)
	}
	if id == nil {
		fmt.Println("No reply. The pedal may not answer identity requests.")
		return
	}
	fmt.Println(id.String())
	if id.IsInterface() {
		fmt.Println(theme.Dim().Render("(the reply came from a MIDI interface, not the pedal behind it)"))
	}
}

func cmdCheck(args []string) {
	if len(args) < 2 {
		fatal("usage: check <port> <profile>")
	}
	cfg := loadConfig()
	port := resolvePort(cfg, args[0])
	profile := lookupProfile(args[1])

	t := midi.NewTransport()
	id, err := t.RequestIdentity(port, 2*time.Second)
	t.Close()
	if err != nil {
		debug.Log("main", "inquiry failed: %v", err)
		id = nil
	}

	verdict := session.CheckMismatch(port, profile, cfg.SavedProfile(port), id, pedal.Builtin())
	if verdict.Mismatch {
		fmt.Println(theme.Warn().Render("mismatch: " + verdict.Message))
	} else {
		fmt.Println("ok: " + verdict.Message)
	}
	fmt.Printf("confidence: %s\n", verdict.Confidence)
}

func cmdBank(args []string) {
	if len(args) < 1 {
		fatal("usage: bank <profile>")
	}
	profile := lookupProfile(args[0])
	_, banks := openLibrary(loadConfig())

	views, err := banks.State(profile.Type)
	if err != nil {
		if errors.Is(err, library.ErrNoBank) {
			fmt.Printf("%s has no addressable memory\n", profile.Name)
			return
		}
		fatal("bank: %v", err)
	}

	fmt.Println(theme.Title().Render(profile.Name + " memory"))
	for _, v := range views {
		label := theme.SlotStyle(v.Color).Render(fmt.Sprintf("%-5s", v.Label))
		if v.Preset == nil {
			fmt.Printf("  %s %s\n", label, theme.Dim().Render("(empty)"))
			continue
		}
		fmt.Printf("  %s %s %s\n", label, v.Preset.Name,
			theme.Dim().Render("synced "+v.SyncedAt.Format("2006-01-02 15:04")))
	}
	if profile.Bank.Save == pedal.SaveManualOnly {
		fmt.Println(theme.Dim().Render("note: " + profile.Bank.SaveHint))
	}
}

func cmdPresets(args []string) {
	store, _ := openLibrary(loadConfig())

	var filter library.Filter
	if len(args) > 0 {
		filter.ProfileType = lookupProfile(args[0]).Type
	}
	presets, err := store.ListPresets(filter)
	if err != nil {
		fatal("presets: %v", err)
	}
	if len(presets) == 0 {
		fmt.Println("No presets.")
		return
	}
	for _, p := range presets {
		marker := " "
		if p.Favorite {
			marker = "*"
		}
		fmt.Printf("%s %-24s %-14s %s", marker, p.Name, p.ProfileType, theme.Dim().Render(p.ID))
		if len(p.Tags) > 0 {
			fmt.Printf("  [%s]", strings.Join(p.Tags, ", "))
		}
		fmt.Println()
	}
}

func cmdPresetDelete(args []string) {
	if len(args) < 1 {
		fatal("usage: preset-delete <id>")
	}
	store, _ := openLibrary(loadConfig())
	if err := store.DeletePreset(args[0]); err != nil {
		fatal("delete: %v", err)
	}
	fmt.Println("Deleted.")
}

func cmdFavorite(args []string) {
	if len(args) < 1 {
		fatal("usage: favorite <id>")
	}
	store, _ := openLibrary(loadConfig())
	p, err := store.FindPreset(args[0])
	if err != nil {
		fatal("favorite: %v", err)
	}
	p.Favorite = !p.Favorite
	if err := store.SavePreset(p); err != nil {
		fatal("favorite: %v", err)
	}
	if p.Favorite {
		fmt.Printf("%q marked favorite\n", p.Name)
	} else {
		fmt.Printf("%q unmarked\n", p.Name)
	}
}

// cmdCapture builds a preset from the profile defaults plus explicit
// field overrides and stores it in the library.
func cmdCapture(args []string) {
	if len(args) < 2 {
		fatal("usage: capture <profile> <name> [field=value ...]")
	}
	profile := lookupProfile(args[0])
	name := args[1]
	store, _ := openLibrary(loadConfig())

	if existing, err := store.FindPresetByName(profile.Type, name); err == nil {
		fatal("a %s preset named %q already exists (%s)", profile.Type, existing.Name, existing.ID)
	}

	state := profile.DefaultState()
	for _, arg := range args[2:] {
		field, value := parseAssignment(profile, arg)
		state[field] = value
	}
	if err := profile.Validate(state); err != nil {
		fatal("capture: %v", err)
	}

	p := library.NewPreset(name, profile.Type, state)
	if err := store.SavePreset(p); err != nil {
		fatal("capture: %v", err)
	}
	fmt.Printf("Saved %q (%s)\n", p.Name, p.ID)
}

func cmdSet(args []string) {
	if len(args) < 3 {
		fatal("usage: set <port> <profile> <field=value ...>")
	}
	cfg := loadConfig()
	port := resolvePort(cfg, args[0])
	profile := lookupProfile(args[1])

	t, s := connect(cfg, port, profile)
	defer t.Close()
	defer s.Close()

	for _, arg := range args[2:] {
		field, value := parseAssignment(profile, arg)
		if err := s.SetField(field, value); err != nil {
			fatal("set: %v", err)
		}
		fmt.Printf("%s = %s\n", field, displayValue(profile, field, value))
	}
	settle()
}

// cmdUpdate edits a stored preset and rewrites every slot it occupies, so
// the pedal's memory never holds stale copies.
func cmdUpdate(args []string) {
	if len(args) < 4 {
		fatal("usage: update <port> <profile> <preset> <field=value ...>")
	}
	cfg := loadConfig()
	profile := lookupProfile(args[1])
	store, banks := openLibrary(cfg)
	preset := resolvePreset(store, profile.Type, args[2])

	for _, arg := range args[3:] {
		field, value := parseAssignment(profile, arg)
		preset.Parameters[field] = value
	}
	if err := profile.Validate(preset.Parameters); err != nil {
		fatal("update: %v", err)
	}

	t, s := connect(cfg, resolvePort(cfg, args[0]), profile)
	defer t.Close()
	defer s.Close()

	err := banks.UpdatePreset(s, preset)
	var partial *library.PartialSyncError
	if errors.As(err, &partial) {
		fmt.Printf("Updated %q; %d slots rewritten\n", preset.Name, len(partial.Synced))
		for _, f := range partial.Failed {
			fmt.Println(theme.Warn().Render(fmt.Sprintf("  slot %s failed: %v",
				profile.Bank.FormatSlot(f.Slot), f.Err)))
		}
		os.Exit(1)
	}
	if err != nil {
		fatal("update: %v", err)
	}
	settle()
	fmt.Printf("Updated %q and rewrote its assigned slots\n", preset.Name)
}

func cmdTrigger(args []string) {
	if len(args) < 3 {
		fatal("usage: trigger <port> <profile> <name>")
	}
	cfg := loadConfig()
	t, s := connect(cfg, resolvePort(cfg, args[0]), lookupProfile(args[1]))
	defer t.Close()
	defer s.Close()

	if err := s.Trigger(args[2]); err != nil {
		fatal("trigger: %v", err)
	}
	fmt.Printf("Fired %s\n", args[2])
}

func cmdSaveSlot(args []string) {
	confirm := false
	args = stripFlag(args, "--yes", &confirm)
	if len(args) < 4 {
		fatal("usage: save-slot <port> <profile> <preset> <slot> [--yes]")
	}
	cfg := loadConfig()
	profile := lookupProfile(args[1])
	store, banks := openLibrary(cfg)
	preset := resolvePreset(store, profile.Type, args[2])
	slot := parseSlot(args[3])

	t, s := connect(cfg, resolvePort(cfg, args[0]), profile)
	defer t.Close()
	defer s.Close()

	result, err := banks.SaveToSlot(s, preset.ID, slot, confirm)
	var conflict *library.ConflictError
	if errors.As(err, &conflict) {
		fatal("slot %s already holds %q; re-run with --yes to overwrite",
			conflict.Label, conflict.Existing.Name)
	}
	if err != nil {
		fatal("save-slot: %v", err)
	}
	settle()

	fmt.Printf("Saved %q to slot %s\n", preset.Name,
		theme.SlotStyle(profile.Bank.SlotColor(slot)).Render(result.Label))
	if result.Replaced != nil {
		fmt.Printf("Replaced %q\n", result.Replaced.Name)
	}
	if result.Instructions != "" {
		fmt.Println(theme.Warn().Render("To finish: " + result.Instructions))
	}
}

func cmdRecallSlot(args []string) {
	if len(args) < 3 {
		fatal("usage: recall-slot <port> <profile> <slot>")
	}
	cfg := loadConfig()
	profile := lookupProfile(args[1])
	_, banks := openLibrary(cfg)
	slot := parseSlot(args[2])

	t, s := connect(cfg, resolvePort(cfg, args[0]), profile)
	defer t.Close()
	defer s.Close()

	preset, err := banks.RecallSlot(s, slot)
	if err != nil {
		fatal("recall-slot: %v", err)
	}
	label := profile.Bank.FormatSlot(slot)
	if preset == nil {
		fmt.Printf("Selected slot %s (no library preset assigned)\n", label)
		return
	}
	fmt.Printf("Selected slot %s: %q\n", label, preset.Name)
}

func cmdRecall(args []string) {
	if len(args) < 3 {
		fatal("usage: recall <port> <profile> <preset>")
	}
	cfg := loadConfig()
	profile := lookupProfile(args[1])
	store, banks := openLibrary(cfg)
	preset := resolvePreset(store, profile.Type, args[2])

	port := resolvePort(cfg, args[0])
	t, s := connect(cfg, port, profile)
	defer t.Close()
	defer s.Close()

	if _, err := banks.RecallPreset(s, preset.ID); err != nil {
		fatal("recall: %v", err)
	}
	settle()
	fmt.Printf("Pushed %q to %s\n", preset.Name, port)
}

func cmdResync(args []string) {
	if len(args) < 2 {
		fatal("usage: resync <port> <profile>")
	}
	cfg := loadConfig()
	profile := lookupProfile(args[1])
	_, banks := openLibrary(cfg)

	t, s := connect(cfg, resolvePort(cfg, args[0]), profile)
	defer t.Close()
	defer s.Close()

	err := banks.Resync(s)
	var partial *library.PartialSyncError
	if errors.As(err, &partial) {
		fmt.Printf("Synced %d slots\n", len(partial.Synced))
		for _, f := range partial.Failed {
			fmt.Println(theme.Warn().Render(fmt.Sprintf("  slot %s failed: %v",
				profile.Bank.FormatSlot(f.Slot), f.Err)))
		}
		os.Exit(1)
	}
	if err != nil {
		fatal("resync: %v", err)
	}
	settle()
	fmt.Println("All assigned slots synced.")
}

func cmdMonitor(args []string) {
	cfg := loadConfig()
	if len(args) == 0 {
		monitorAutoConnect(cfg)
		return
	}
	if len(args) < 2 {
		fatal("usage: monitor [port profile]")
	}
	profile := lookupProfile(args[1])
	port := resolvePort(cfg, args[0])

	t, s := connect(cfg, port, profile)
	defer t.Close()
	defer s.Close()

	// replace the default routing so moves also print
	t.SetInbound(func(dev string, control, value uint8) {
		s.HandleControlChange(control, value)
		name, v, ok := profile.DecodeControl(control, value)
		if !ok {
			return
		}
		fmt.Printf("[%s] %s = %s\n", time.Now().Format("15:04:05.000"),
			name, displayValue(profile, name, v))
	})

	fmt.Printf("Monitoring %s as %s. Ctrl+C to exit.\n", port, profile.Name)
	select {}
}

// monitorAutoConnect opens every device flagged autoConnect in the config
// and prints decoded knob moves from all of them at once.
func monitorAutoConnect(cfg *config.Config) {
	devices := cfg.AutoConnectDevices()
	if len(devices) == 0 {
		fatal("no devices flagged for auto-connect; run: autoconnect <port> on")
	}

	t := midi.NewTransport()
	defer t.Close()

	sessions := make(map[string]*session.Session, len(devices))
	for _, d := range devices {
		profile := lookupProfile(d.ProfileType)
		channel := d.Channel
		if channel < 1 || channel > 16 {
			channel = 1
		}
		if err := t.Connect(d.PortName, channel, d.ProfileType); err != nil {
			fmt.Println(theme.Warn().Render(fmt.Sprintf("skipping %s: %v", d.PortName, err)))
			continue
		}
		s := session.New(t, profile, d.PortName)
		defer s.Close()
		sessions[d.PortName] = s
		fmt.Printf("Connected %s as %s\n", d.PortName, profile.Name)
	}
	if len(sessions) == 0 {
		fatal("no auto-connect device could be opened")
	}

	t.SetInbound(func(dev string, control, value uint8) {
		s, ok := sessions[dev]
		if !ok {
			return
		}
		s.HandleControlChange(control, value)
		profile := s.Profile()
		name, v, ok := profile.DecodeControl(control, value)
		if !ok {
			return
		}
		fmt.Printf("[%s] %s: %s = %s\n", time.Now().Format("15:04:05.000"),
			dev, name, displayValue(profile, name, v))
	})

	fmt.Println("Ctrl+C to exit.")
	select {}
}

// cmdAutoconnect flags a previously used device so a bare monitor picks
// it up. FindDevice hands back a pointer into the config, so the edit
// lands in place.
func cmdAutoconnect(args []string) {
	if len(args) < 2 {
		fatal("usage: autoconnect <port> <on|off>")
	}
	cfg := loadConfig()
	port := resolvePort(cfg, args[0])
	dev := cfg.FindDevice(port)
	if dev == nil {
		fatal("%q has never been connected; run a command against it first", port)
	}
	switch args[1] {
	case "on":
		dev.AutoConnect = true
	case "off":
		dev.AutoConnect = false
	default:
		fatal("usage: autoconnect <port> <on|off>")
	}
	if err := cfg.Save(); err != nil {
		fatal("config: %v", err)
	}
	fmt.Printf("%s auto-connect %s\n", port, args[1])
}

// parseAssignment splits "field=value", accepting option names for enums
// and on/off for switches.
func parseAssignment(profile *pedal.Profile, arg string) (string, int) {
	name, raw, ok := strings.Cut(arg, "=")
	if !ok {
		fatal("expected field=value, got %q", arg)
	}
	f, found := profile.Field(name)
	if !found {
		fatal("%s has no field %q", profile.Type, name)
	}

	switch f.Kind {
	case pedal.Boolean:
		switch strings.ToLower(raw) {
		case "on", "true", "1":
			return name, 1
		case "off", "false", "0":
			return name, 0
		}
		fatal("%s: expected on or off, got %q", name, raw)
	case pedal.Enum:
		for i, opt := range f.Options {
			if strings.EqualFold(opt, raw) {
				return name, i
			}
		}
		fatal("%s: expected one of %s", name, strings.Join(f.Options, ", "))
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		fatal("%s: expected a number 0-127, got %q", name, raw)
	}
	return name, v
}

func displayValue(profile *pedal.Profile, name string, v int) string {
	f, ok := profile.Field(name)
	if !ok {
		return strconv.Itoa(v)
	}
	switch f.Kind {
	case pedal.Boolean:
		if v == 1 {
			return "on"
		}
		return "off"
	case pedal.Enum:
		return f.OptionName(v)
	}
	return strconv.Itoa(v)
}

// resolvePreset accepts either a preset id or a name unique to the profile.
func resolvePreset(store library.Store, profileType, ref string) *library.Preset {
	p, err := store.FindPreset(ref)
	if err == nil {
		return p
	}
	p, err = store.FindPresetByName(profileType, ref)
	if err != nil {
		fatal("no %s preset %q", profileType, ref)
	}
	return p
}

func parseSlot(raw string) uint8 {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 127 {
		fatal("expected a slot number 0-127, got %q", raw)
	}
	return uint8(n)
}

func stripFlag(args []string, flag string, set *bool) []string {
	out := args[:0:0]
	for _, a := range args {
		if a == flag {
			*set = true
			continue
		}
		out = append(out, a)
	}
	return out
}
