package hub

import (
	"bufio"
	"database/sql"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	git "github.com/go-git/go-git/v5"
	"gopkg.in/yaml.v3"

	"github.com/tim-hardcastle/Remora/database"
	"github.com/tim-hardcastle/Remora/evaluator"
	"github.com/tim-hardcastle/Remora/initializer"
	"github.com/tim-hardcastle/Remora/lexer"
	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/parser"
	"github.com/tim-hardcastle/Remora/sysvars"
	"github.com/tim-hardcastle/Remora/text"
)

var MARGIN = 80

type Hub struct {
	services               map[string]*Service
	currentServiceName     string
	sysvars                map[string]object.Object
	peek                   bool
	in                     io.Reader
	out                    io.Writer
	anonymousServiceNumber int
	lastErrors             object.Errors
	Username               string
}

// This takes the input from the REPL, interprets it as a hub command if it
// begins with 'hub'; as an instruction to switch services if it consists only
// of the name of a service; as an expression to be passed to a service if it
// begins with the name of a service; and as an expression to be passed to
// the current service if none of the above hold.
func (hub *Hub) Do(line string) bool {

	hubWords := strings.Fields(line)
	if len(hubWords) == 0 {
		return false
	}

	// We may be talking to the hub.

	if hubWords[0] == "hub" {
		if len(hubWords) == 1 {
			hub.help()
			return false
		}
		verb, args := hub.ParseHubCommand(line[4:])
		if verb == "error" {
			return false
		}
		return hub.DoHubCommand(hub.Username, "", verb, args)
	}

	// We may be talking to the os.

	if hubWords[0] == "os" {
		if len(hubWords) == 3 && hubWords[1] == "cd" { // Because cd changes the directory for the current
			os.Chdir(hubWords[2])          // process, if we did it with exec it would do it for
			hub.WriteString(text.OK + "\n") // that process and not for the hub.
			return false
		}
		command := exec.Command(hubWords[1], hubWords[2:]...)
		out, err := command.Output()
		if err != nil {
			hub.WriteError(err.Error())
			return false
		}
		if len(out) == 0 {
			hub.WriteString(text.OK + "\n")
			return false
		}
		hub.WriteString(string(out))
		return false
	}

	// Otherwise, we need to find a service to talk to.

	service, ok := hub.services[hubWords[0]]
	if ok {
		if len(hubWords) == 1 {
			hub.currentServiceName = hubWords[0]
			hub.WriteString(text.OK + "\n")
			return false
		}
		line = line[len(hubWords[0])+1:]
	} else {
		service, ok = hub.services[hub.currentServiceName]
	}
	if !ok {
		hub.WriteError("the hub can't find the service " + text.Emph(hub.currentServiceName) + ".")
		return false
	}

	// If we do, we pass the line to the service and get back a string to output.

	if hub.peek {
		lexer.LexDump(line)
		service.Parser.ParseDump("REPL input", line)
	}

	result, errors := service.Do(line, hub.view())
	if service.Parser.ErrorsExist() {
		hub.lastErrors = service.Parser.Errors
		hub.WriteString(service.Parser.ReturnErrors())
		service.Parser.ClearErrors()
		return false
	}
	if len(errors) > 0 {
		hub.lastErrors = errors
	}
	hub.WriteString(result)
	return false
}

// ParseHubCommand splits a hub instruction into a verb and its arguments.
// Two-word and three-word command names are folded into dashed verbs,
// 'db init' into 'db-init' and 'db add user' into 'db-add-user', so that
// DoHubCommand can switch on a single string.
func (hub *Hub) ParseHubCommand(line string) (string, []string) {
	words := strings.Fields(line)
	if len(words) == 0 {
		hub.WriteError("you need to say what you want the hub to do.")
		return "error", []string{}
	}
	verb := words[0]
	args := words[1:]
	if verb == "db" && len(args) > 0 {
		verb, args = verb+"-"+args[0], args[1:]
		if verb == "db-add" && len(args) > 0 {
			verb, args = verb+"-"+args[0], args[1:]
		}
	}
	return verb, args
}

// DoHubCommand carries out one hub command. It returns true if the command
// was 'quit', since the hub can't quit from the REPL itself.
func (hub *Hub) DoHubCommand(username, password, verb string, args []string) bool {
	switch verb {

	// Verbs are in alphabetical order:
	// db-add-group, db-add-user, db-admin, db-groups, db-init, db-login,
	// db-put, edit, get, halt, help, lib, peek, quit, reset, run, services,
	// switch, view, why.

	case "db-add-group":
		if len(args) != 1 {
			hub.WriteError("the " + text.Emph("hub db add group") +
				" command takes one parameter, the name of the group.")
			return false
		}
		db := hub.getConnection()
		if db == nil {
			return false
		}
		if err := database.AddGroup(db, args[0]); err != nil {
			hub.WriteError(err.Error())
			return false
		}
		hub.WriteString(text.OK + "\n")

	case "db-add-user":
		if len(args) != 3 {
			hub.WriteError("the " + text.Emph("hub db add user") +
				" command takes three parameters, a username, an email address, and a password.")
			return false
		}
		db := hub.getConnection()
		if db == nil {
			return false
		}
		if err := database.AddUser(db, args[0], args[1], args[2]); err != nil {
			hub.WriteError(err.Error())
			return false
		}
		hub.WriteString(text.OK + "\n")

	case "db-admin":
		if len(args) != 3 {
			hub.WriteError("the " + text.Emph("hub db admin") +
				" command takes three parameters, a username, an email address, and a password.")
			return false
		}
		db := hub.getConnection()
		if db == nil {
			return false
		}
		if err := database.AddAdmin(db, args[0], args[1], args[2]); err != nil {
			hub.WriteError(err.Error())
			return false
		}
		hub.Username = args[0]
		hub.WriteString(text.OK + "\n")

	case "db-groups":
		name := username
		if len(args) == 1 {
			name = args[0]
		}
		if len(args) > 1 {
			hub.WriteError("the " + text.Emph("hub db groups") +
				" command takes at most one parameter, a username.")
			return false
		}
		if name == "" {
			hub.WriteError("you need to log in, or to say whose groups you want to see.")
			return false
		}
		db := hub.getConnection()
		if db == nil {
			return false
		}
		result, err := database.GetGroupsOfUser(db, name)
		if err != nil {
			hub.WriteError(err.Error())
			return false
		}
		hub.WriteString(result)

	case "db-init":
		if len(args) != 0 {
			hub.WriteError("the " + text.Emph("hub db init") + " command takes no parameters.")
			return false
		}
		hub.configDb()

	case "db-login":
		switch {
		case len(args) == 2:
			username, password = args[0], args[1]
		case len(args) == 0 && username != "":
		default:
			hub.WriteError("the " + text.Emph("hub db login") +
				" command takes two parameters, a username and a password.")
			return false
		}
		db := hub.getConnection()
		if db == nil {
			return false
		}
		if err := database.ValidateUser(db, username, password); err != nil {
			hub.WriteError(err.Error())
			return false
		}
		hub.Username = username
		hub.WriteString(text.OK + "\n")

	case "db-put":
		if len(args) != 2 {
			hub.WriteError("the " + text.Emph("hub db put") +
				" command takes two parameters, a username and the group to put them in.")
			return false
		}
		db := hub.getConnection()
		if db == nil {
			return false
		}
		if err := database.AddUserToGroup(db, args[0], args[1], false); err != nil {
			hub.WriteError(err.Error())
			return false
		}
		hub.WriteString(text.OK + "\n")

	case "edit":
		if len(args) != 1 {
			hub.WriteError("the " + text.Emph("hub edit") +
				" command takes one parameter, a filename.")
			return false
		}
		command := exec.Command("vim", args[0])
		command.Stdin = os.Stdin
		command.Stdout = os.Stdout
		if err := command.Run(); err != nil {
			hub.WriteError(err.Error())
		}

	case "get":
		if len(args) != 1 {
			hub.WriteError("the " + text.Emph("hub get") +
				" command takes one parameter, the URL of a library repository.")
			return false
		}
		hub.getLibrary(args[0])

	case "halt":
		name := hub.currentServiceName
		if len(args) > 1 {
			hub.WriteError("the " + text.Emph("hub halt") +
				" command takes at most one parameter, the name of a service.")
			return false
		}
		if len(args) == 1 {
			if _, ok := hub.services[args[0]]; !ok {
				hub.WriteError("the hub can't find the service " + text.Emph(args[0]) + ".")
				return false
			}
			name = args[0]
		}
		if name == "" {
			hub.WriteError("the empty service doesn't halt.")
			return false
		}
		if name == hub.currentServiceName {
			hub.currentServiceName = ""
		}
		delete(hub.services, name)
		hub.WriteString(text.OK + "\n")

	case "help":
		switch {
		case len(args) == 0:
			hub.help()
		case len(args) > 1:
			hub.WriteError("the " + text.Emph("hub help") + " command takes at most one parameter.")
		default:
			if helpMessage, ok := helpStrings[args[0]]; ok {
				hub.WritePretty(helpMessage + "\n")
			} else {
				hub.WriteError("the " + text.Emph("hub help") + " command doesn't accept " +
					text.Emph(args[0]) + " as a parameter.")
			}
		}

	case "lib":
		switch len(args) {
		case 0:
			hub.WriteString("$lib is " + hub.sysvars["$lib"].Inspect(object.ViewLiteral) + "\n")
		case 1:
			hub.setSysvar("$lib", &object.String{Value: args[0]})
		default:
			hub.WriteError("the " + text.Emph("hub lib") +
				" command takes at most one parameter, the path of the library directory.")
		}

	case "peek":
		switch {
		case len(args) == 0:
			hub.peek = !hub.peek
		case len(args) == 1 && args[0] == "on":
			hub.peek = true
		case len(args) == 1 && args[0] == "off":
			hub.peek = false
		default:
			hub.WriteError("the " + text.Emph("hub peek") + " command only accepts the parameters " +
				text.Emph("on") + " or " + text.Emph("off") + ".")
		}

	case "quit":
		if len(args) > 0 {
			hub.WriteError("the " + text.Emph("hub quit") + " command takes no parameters.")
			return false
		}
		hub.quit()
		return true

	case "reset":
		name := hub.currentServiceName
		if len(args) > 1 {
			hub.WriteError("the " + text.Emph("hub reset") +
				" command takes at most one parameter, the name of a service.")
			return false
		}
		if len(args) == 1 {
			name = args[0]
		}
		service, ok := hub.services[name]
		if !ok {
			hub.WriteError("the hub can't find the service " + text.Emph(name) + ".")
			return false
		}
		hub.WriteString("Restarting script " + text.Emph(service.GetScriptFilepath()) +
			" as service " + text.Emph(name) + ".\n")
		hub.Start(name, service.GetScriptFilepath())

	case "run":
		switch len(args) {
		case 0:
			hub.currentServiceName = ""
		case 1:
			hub.WriteString("Starting script " + text.Emph(args[0]) + " as service " +
				text.Emph("#"+strconv.Itoa(hub.anonymousServiceNumber)) + ".\n")
			hub.StartAnonymous(args[0])
		case 3:
			if args[1] != "as" {
				hub.WriteError("the word " + text.Emph(args[1]) + " doesn't make any sense there.")
				return false
			}
			hub.WriteString("Starting script " + text.Emph(args[0]) + " as service " +
				text.Emph(args[2]) + ".\n")
			hub.Start(args[2], args[0])
		default:
			hub.WriteError("the " + text.Emph("hub run") + " command takes a filename, optionally " +
				"followed by " + text.Emph("as <service name>") + ".")
		}

	case "services":
		if len(args) > 0 {
			hub.WriteError("the " + text.Emph("hub services") + " command takes no parameters.")
			return false
		}
		hub.WriteString("\n")
		hub.list()

	case "switch":
		if len(args) != 1 {
			hub.WriteError("the " + text.Emph("hub switch") +
				" command takes one parameter, the name of a service.")
			return false
		}
		if _, ok := hub.services[args[0]]; !ok {
			hub.WriteError("the hub can't find the service " + text.Emph(args[0]) + ".")
			return false
		}
		hub.currentServiceName = args[0]
		hub.WriteString(text.OK + "\n")

	case "view":
		switch len(args) {
		case 0:
			hub.WriteString("$view is " + hub.sysvars["$view"].Inspect(object.ViewLiteral) + "\n")
		case 1:
			hub.setSysvar("$view", &object.String{Value: args[0]})
		default:
			hub.WriteError("the " + text.Emph("hub view") + " command takes at most one parameter, " +
				text.Emph("plain") + " or " + text.Emph("literal") + ".")
		}

	case "why":
		if len(args) != 1 {
			hub.WriteError("the " + text.Emph("hub why") +
				" command takes one parameter, the number of an error.")
			return false
		}
		number, err := strconv.Atoi(args[0])
		if err != nil {
			hub.WriteError("the " + text.Emph("hub why") +
				" command takes the number of an error as its parameter.")
			return false
		}
		hub.WritePretty(object.GetExplanation(hub.lastErrors, number) + "\n")

	default:
		hub.WriteError("the hub doesn't recognize the command " + text.Emph(verb) + ".")
	}
	return false
}

// Most of the db commands need a connection to talk to.
func (hub *Hub) getConnection() *sql.DB {
	db := database.Connection()
	if db == nil {
		hub.WriteError("no database connection is open. You can open one with " +
			text.Emph("hub db init") + ".")
	}
	return db
}

// configDb gets the connection details with a little question-and-answer
// session, the driver by number and the rest as written.
func (hub *Hub) configDb() {
	hub.WriteString(database.GetDriverOptions() + ": ")
	reader := bufio.NewReader(hub.in)
	choice, err := reader.ReadString('\n')
	if err != nil {
		hub.WriteError(err.Error())
		return
	}
	drivers := database.GetSortedDrivers()
	number, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil || number < 0 || number >= len(drivers) {
		hub.WriteError("that wasn't the number of a driver.")
		return
	}
	answers := []string{}
	for _, field := range []string{"Host", "Port", "Database name",
		"Username for database access", "Password for database access"} {
		hub.WriteString(field + ": ")
		answer, err := reader.ReadString('\n')
		if err != nil {
			hub.WriteError(err.Error())
			return
		}
		answers = append(answers, strings.TrimSpace(answer))
	}
	db, err := database.GetdB(drivers[number], answers[0], answers[1], answers[2],
		answers[3], answers[4])
	if err != nil {
		hub.WriteError(err.Error())
		return
	}
	database.SetConnection(db)
	hub.WriteString(text.OK + "\n")
}

// getLibrary clones a library repository into the lib directory, so that
// 'hub get https://github.com/foo/remora-stats' followed by
// '(import "lib/remora-stats/loader.rmr")' just works.
func (hub *Hub) getLibrary(url string) {
	name := strings.TrimSuffix(filepath.Base(url), ".git")
	target := filepath.Join(hub.libDir(), name)
	_, err := git.PlainClone(target, false, &git.CloneOptions{
		URL:      url,
		Progress: hub.out,
		Depth:    1,
	})
	if err != nil {
		hub.WriteError(err.Error())
		return
	}
	hub.WriteString("Library cloned into " + text.Emph(target) + ".\n" + text.OK + "\n")
}

func (hub *Hub) quit() {
	hub.save()
	database.SetConnection(nil)
	hub.WriteString(text.OK + "\n" + text.Logo() + "Thank you for using " + text.NAME +
		". Have a nice day!\n\n")
}

func (hub *Hub) help() {
	hub.WriteString("\n")
	hub.WriteString("Hub commands are:\n")
	hub.WriteString("\n")
	hub.WriteString(text.BULLET + "db add group <group>\n")
	hub.WriteString(text.BULLET + "db add user <username> <email> <password>\n")
	hub.WriteString(text.BULLET + "db admin <username> <email> <password>\n")
	hub.WriteString(text.BULLET + "db groups <username>\n")
	hub.WriteString(text.BULLET + "db init\n")
	hub.WriteString(text.BULLET + "db login <username> <password>\n")
	hub.WriteString(text.BULLET + "db put <username> <group>\n")
	hub.WriteString(text.BULLET + "edit <filename>\n")
	hub.WriteString(text.BULLET + "get <url>\n")
	hub.WriteString(text.BULLET + "halt <service name>\n")
	hub.WriteString(text.BULLET + "help <topic>\n")
	hub.WriteString(text.BULLET + "lib <path>\n")
	hub.WriteString(text.BULLET + "peek <on/off>\n")
	hub.WriteString(text.BULLET + "quit\n")
	hub.WriteString(text.BULLET + "reset <service name>\n")
	hub.WriteString(text.BULLET + "run <filename> as <service name>\n")
	hub.WriteString(text.BULLET + "services\n")
	hub.WriteString(text.BULLET + "switch <service name>\n")
	hub.WriteString(text.BULLET + "view <plain/literal>\n")
	hub.WriteString(text.BULLET + "why <error number>\n")
	hub.WriteString("\n")
}

func (hub *Hub) WritePretty(s string) {
	for i := 0; i < len(s); {
		e := i + MARGIN
		j := 0
		if e > len(s) {
			j = len(s) - i
		} else {
			j = strings.LastIndexAny(s[i:e], " \n")
		}
		if j == -1 {
			j = MARGIN
		}
		hub.WriteString(s[i:i+j] + "\n")
		i = i + j + 1
	}
}

func (hub *Hub) WriteError(s string) {
	hub.WritePretty("\n" + text.ERROR + s + "\n")
}

func (hub *Hub) WriteString(s string) {
	io.WriteString(hub.out, s)
}

var helpStrings = map[string]string{
	"db": text.Emph("hub db init") + " will ask you for the details of a database and connect " +
		"to it. After that " + text.Emph("hub db admin") + " sets up the user tables with an " +
		"admin user; " + text.Emph("hub db add user") + " and " + text.Emph("hub db add group") +
		" add users and groups; " + text.Emph("hub db put") + " puts a user in a group; " +
		text.Emph("hub db groups") + " lists the groups a user belongs to; and " +
		text.Emph("hub db login") + " tells the hub who you are. The services' " +
		text.Emph("sql/query") + " and " + text.Emph("sql/exec") + " functions use the same " +
		"connection.",
	"edit": text.Emph("hub edit") + " followed by a filename will open the file in vim.",
	"get": text.Emph("hub get") + " followed by the URL of a git repository will clone the " +
		"repository into the hub's library directory, where its scripts can be imported.",
	"halt": text.Emph("hub halt") + " followed by the name of a service will halt the service. " +
		"If no service name is given, the hub will halt the current service.",
	"help": text.Emph("hub help") + " followed by the name of a topic will supply you with " +
		"information on that topic.",
	"lib": text.Emph("hub lib") + " followed by a path will tell the hub where to look for " +
		"the standard library and any libraries you " + text.Emph("hub get") + ". Without a " +
		"parameter it shows the path currently in use.",
	"peek": text.Emph("hub peek") + " followed by " + text.Emph("on") + " or " + text.Emph("off") +
		" will allow you to see what the lexer and parser are doing. " + text.Emph("peek") +
		" without a parameter toggles between on and off.",
	"quit": text.Emph("hub quit") + " closes everything down.",
	"reset": text.Emph("hub reset") + " followed by the name of a service will rerun the " +
		"associated script. If no service name is given the hub will reset the current service.",
	"run": text.Emph("hub run") + " without parameters will start a REPL with no script. With " +
		"one parameter (a valid filename) it will run the script as an anonymous service. By " +
		"adding " + text.Emph("as <name>") + " you can name the service.",
	"services": text.Emph("hub services") + " will list all services currently running on the hub.",
	"switch": text.Emph("hub switch") + " followed by the name of a service will make that " +
		"service the current one. Typing the bare name of a service does the same thing.",
	"view": text.Emph("hub view") + " followed by " + text.Emph("plain") + " or " +
		text.Emph("literal") + " sets how the REPL displays results: as they would be printed, " +
		"or as they would be written. Without a parameter it shows the current setting.",
	"why": text.Emph("hub why") + " followed by the number of an error in the most recent " +
		"batch will give you a fuller explanation of the error.",
}

func (hub *Hub) StartAnonymous(scriptFilepath string) {
	hub.Start("#"+strconv.Itoa(hub.anonymousServiceNumber), scriptFilepath)
	hub.anonymousServiceNumber = hub.anonymousServiceNumber + 1
}

func (hub *Hub) Start(name, scriptFilepath string) {
	hub.currentServiceName = name
	hub.createService(name, scriptFilepath)
}

// A remora.yaml next to a script, or at the top of a project directory, can
// name the entry point, a library directory, and prelude files to run in
// order before the script itself.
type manifest struct {
	Entry   string   `yaml:"entry"`
	Lib     string   `yaml:"lib"`
	Prelude []string `yaml:"prelude"`
}

func loadManifest(dir string) (*manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, "remora.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	m := &manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

// createService makes the environment, runs the standard library's loader
// and the manifest's preludes in it, then the script, and if none of that
// went wrong it registers the result as a service.
func (hub *Hub) createService(name, scriptFilepath string) {
	env := initializer.NewEnvironment()
	libPath := hub.libDir()
	preludes := []string{}

	if scriptFilepath != "" {
		projectDir := scriptFilepath
		if info, err := os.Stat(scriptFilepath); err != nil || !info.IsDir() {
			projectDir = filepath.Dir(scriptFilepath)
		}
		m, err := loadManifest(projectDir)
		if err != nil {
			hub.WriteError(err.Error())
			hub.currentServiceName = ""
			return
		}
		if m == nil && projectDir == scriptFilepath {
			hub.WriteError("to run a directory as a service it needs a " +
				text.Emph("remora.yaml") + " manifest.")
			hub.currentServiceName = ""
			return
		}
		if m != nil {
			if m.Lib != "" {
				libPath = filepath.Join(projectDir, m.Lib)
			}
			for _, prelude := range m.Prelude {
				preludes = append(preludes, filepath.Join(projectDir, prelude))
			}
			if projectDir == scriptFilepath {
				if m.Entry == "" {
					hub.WriteError("the manifest of " + text.Emph(scriptFilepath) +
						" doesn't name an entry point.")
					hub.currentServiceName = ""
					return
				}
				scriptFilepath = filepath.Join(projectDir, m.Entry)
			}
		}
	}

	// The standard library, then the preludes, then the script.

	loader := filepath.Join(libPath, "loader.rmr")
	if _, err := os.Stat(loader); err == nil {
		if remoraError := initializer.ImportFile(loader, env); remoraError != nil {
			hub.WriteString(remoraError.Inspect(object.ViewStdOut) + "\n")
			hub.currentServiceName = ""
			return
		}
	}
	for _, prelude := range preludes {
		if remoraError := initializer.ImportFile(prelude, env); remoraError != nil {
			hub.WriteString(remoraError.Inspect(object.ViewStdOut) + "\n")
			hub.currentServiceName = ""
			return
		}
	}

	newService := NewService()
	newService.Parser = parser.New()
	newService.Env = env
	newService.scriptFilepath = scriptFilepath

	if scriptFilepath != "" {
		source, err := os.ReadFile(scriptFilepath)
		if err != nil {
			hub.WriteError(err.Error())
			hub.currentServiceName = ""
			return
		}
		exprs := newService.Parser.ParseLine(scriptFilepath, string(source))
		if newService.Parser.ErrorsExist() {
			hub.lastErrors = newService.Parser.Errors
			hub.WriteString(newService.Parser.ReturnErrors())
			newService.Parser.ClearErrors()
			hub.currentServiceName = ""
			return
		}
		for _, expr := range exprs {
			result := evaluator.Eval(expr, env)
			if result.Type() == object.ERROR_OBJ {
				remoraError := result.(*object.Error)
				hub.lastErrors = object.Errors{remoraError}
				hub.WriteString(remoraError.Inspect(object.ViewStdOut) + "\n")
				hub.currentServiceName = ""
				return
			}
		}
	}

	hub.services[name] = newService
}

func New(in io.Reader, out io.Writer) *Hub {
	hub := Hub{
		services:           make(map[string]*Service),
		currentServiceName: "",
		sysvars:            make(map[string]object.Object),
		in:                 in,
		out:                out,
	}
	for name, sysvar := range sysvars.Sysvars {
		hub.sysvars[name] = sysvar.Dflt
	}
	return &hub
}

func (hub *Hub) GetCurrentServiceName() string {
	return hub.currentServiceName
}

func (hub *Hub) save() string {
	if err := os.MkdirAll("rsc", 0777); err != nil {
		return text.ERROR + strings.TrimSpace(err.Error())
	}
	f, err := os.Create("rsc/hub.dat")
	if err != nil {
		return text.ERROR + strings.TrimSpace(err.Error())
	}
	defer f.Close()
	for k := range hub.services {
		if !isAnonymous(k) {
			_, err := f.WriteString(k + ", " + hub.services[k].GetScriptFilepath() + "\n")
			if err != nil {
				return text.ERROR + strings.TrimSpace(err.Error())
			}
		}
	}
	g, err := os.Create("rsc/current.dat")
	if err != nil {
		return text.ERROR + strings.TrimSpace(err.Error())
	}
	defer g.Close()
	if isAnonymous(hub.currentServiceName) {
		_, err = g.WriteString("")
	} else {
		_, err = g.WriteString(hub.currentServiceName)
	}
	if err != nil {
		return text.ERROR + strings.TrimSpace(err.Error())
	}
	return text.OK
}

func isAnonymous(serviceName string) bool {
	if serviceName == "" {
		return true
	}
	_, err := strconv.Atoi(serviceName[1:])
	return serviceName[0] == '#' && err == nil
}

func (hub *Hub) Open() {

	if f, err := os.Open("rsc/hub.dat"); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			params := strings.Split(scanner.Text(), ", ")
			if len(params) == 2 {
				hub.Start(params[0], params[1])
			}
		}
		f.Close()
	}

	hub.createService("", "")

	hub.list()

	if f, err := os.Open("rsc/current.dat"); err == nil {
		scanner := bufio.NewScanner(f)
		scanner.Scan()
		hub.currentServiceName = scanner.Text()
		f.Close()
	} else {
		hub.currentServiceName = ""
	}
}

func (hub *Hub) list() {
	if len(hub.services) == 1 { // That would be the empty service, the REPL.
		return
	}
	hub.WriteString("The hub is running the following services:\n\n")
	for k := range hub.services {
		if k == "" {
			continue
		}
		hub.WriteString("service " + text.Emph(k) + " running script " +
			text.Emph(filepath.Base(hub.services[k].GetScriptFilepath())) + "\n")
	}
	hub.WriteString("\n")
}

func (hub *Hub) setSysvar(name string, value object.Object) {
	if complaint := sysvars.Sysvars[name].Validator(value); complaint != "" {
		hub.WriteError(complaint + ".")
		return
	}
	hub.sysvars[name] = value
	hub.WriteString(text.OK + "\n")
}

func (hub *Hub) libDir() string {
	return hub.sysvars["$lib"].(*object.String).Value
}

func (hub *Hub) view() object.View {
	if hub.sysvars["$view"].(*object.String).Value == "literal" {
		return object.ViewLiteral
	}
	return object.ViewStdOut
}
