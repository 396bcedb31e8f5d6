package database

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/crypto/bcrypt"

	"src.elv.sh/pkg/persistent/vector"

	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/text"

	// SQL drivers

	_ "github.com/go-sql-driver/mysql"    // MariaDB & MySQL
	_ "github.com/lib/pq"                 // Postgres
	_ "github.com/microsoft/go-mssqldb"   // SQL Server
	_ "github.com/nakagami/firebirdsql"   // Firebird
	_ "github.com/sijms/go-ora"           // Oracle
	_ "modernc.org/sqlite"                // SQLite
)

// This supplies the hub with its database connections and user
// administration, and supplies the sql/query and sql/exec intrinsics with
// the rows they ask for, turned into Remora values.

// List of SQL drivers for when I want to import more: https://zchee.github.io/golang-wiki/SQLDrivers/

var drivers = map[string]string{
	"Firebird SQL": "firebirdsql",
	"MariaDB":      "mysql",
	"MySQL":        "mysql",
	"Oracle":       "oracle",
	"Postgres":     "postgres",
	"SQL Server":   "sqlserver",
	"SQLite":       "sqlite",
}

// The connection the intrinsics go through. The hub opens it; scripts
// can't.
var current *sql.DB

// SetConnection makes db the connection the sql/query and sql/exec
// intrinsics use, closing the previous one if there was one.
func SetConnection(db *sql.DB) {
	if current != nil {
		current.Close()
	}
	current = db
}

func Connection() *sql.DB {
	return current
}

func GetdB(driver, host, port, name, username, password string) (*sql.DB, error) {
	sqlObj, connectionError := sql.Open(drivers[driver], makeDSN(driver, host, port, name, username, password))
	if connectionError != nil {
		return nil, connectionError
	}
	if err := sqlObj.Ping(); err != nil {
		return nil, err
	}
	return sqlObj, nil
}

// Each driver has its own idea of what a connection string looks like.
// SQLite just wants the filename; everything in the name, host, port
// fields besides that goes unused.
func makeDSN(driver, host, port, name, username, password string) string {
	switch drivers[driver] {
	case "sqlite":
		return name
	case "mysql":
		return fmt.Sprintf("%v:%v@tcp(%v:%v)/%v", username, password, host, port, name)
	case "firebirdsql":
		return fmt.Sprintf("%v:%v@%v:%v/%v", username, password, host, port, name)
	case "oracle":
		return fmt.Sprintf("oracle://%v:%v@%v:%v/%v", username, password, host, port, name)
	case "sqlserver":
		return fmt.Sprintf("sqlserver://%v:%v@%v:%v?database=%v", username, password, host, port, name)
	}
	return fmt.Sprintf("host=%v port=%v dbname=%v user=%v password=%v sslmode=disable",
		host, port, name, username, password)
}

func GetDriverOptions() string {
	result := "The following SQL drivers are available: \n\n"
	for k, v := range GetSortedDrivers() {
		result = result + fmt.Sprintf("  [%v] %v\n", k, v)
	}
	result = result + "\nPick a number"
	return result
}

func GetSortedDrivers() []string {
	dr := []string{}
	for k := range drivers {
		dr = append(dr, k)
	}
	sort.Strings(dr)
	return dr
}

// QueryRows runs a query and returns the result set as a list of lists,
// one per row, with the cells turned into Remora values.
func QueryRows(db *sql.DB, query string, params []any) (*object.List, error) {
	rows, err := db.Query(query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	result := vector.Empty
	for rows.Next() {
		cells := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range cells {
			pointers[i] = &cells[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		rowValues := make([]object.Object, 0, len(cells))
		for _, cell := range cells {
			rowValues = append(rowValues, objectify(cell))
		}
		result = result.Conj(object.ListFromSlice(rowValues))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &object.List{Elements: result}, nil
}

// ExecStatement runs a statement and returns the number of rows affected.
func ExecStatement(db *sql.DB, statement string, params []any) (int64, error) {
	result, err := db.Exec(statement, params...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// What the driver gives us back is any of a small set of Go types,
// depending on the driver's mood; this flattens them into Remora's smaller
// set.
func objectify(cell any) object.Object {
	switch cell := cell.(type) {
	case nil:
		return object.EMPTY
	case bool:
		return object.MakeBool(cell)
	case int64:
		return &object.Number{Value: float64(cell)}
	case float64:
		return &object.Number{Value: cell}
	case []byte:
		return &object.String{Value: string(cell)}
	case string:
		return &object.String{Value: cell}
	case time.Time:
		return &object.String{Value: cell.Format(time.RFC3339)}
	}
	return &object.String{Value: fmt.Sprint(cell)}
}

func AddAdmin(db *sql.DB, username, email, password string) error {
	query := `CREATE TABLE IF NOT EXISTS _Users (
    username varchar(32),
    email varchar(60),
    password varchar(60),
PRIMARY KEY (username));

CREATE TABLE IF NOT EXISTS _Groups (
    groupName varchar(32),
PRIMARY KEY (groupName));

CREATE TABLE IF NOT EXISTS _GroupMemberships (
    username varchar(32) REFERENCES _Users ON DELETE CASCADE,
    groupName varchar(32) REFERENCES _Groups ON DELETE CASCADE,
    owner BOOLEAN DEFAULT FALSE,
PRIMARY KEY (username, groupName));

INSERT INTO _Groups (groupName)
VALUES('Admin')
ON CONFLICT DO NOTHING;

INSERT INTO _Groups (groupName)
VALUES('Users')
ON CONFLICT DO NOTHING;`
	_, err := db.Exec(query)
	if err != nil {
		return err
	}

	err = AddUser(db, username, email, password)
	if err != nil {
		return err
	}
	for _, group := range []string{"Admin", "Users"} {
		err = AddUserToGroup(db, username, group, true)
		if err != nil {
			return err
		}
	}
	return nil
}

func AddUser(db *sql.DB, username, email, password string) error {
	query := `INSERT INTO _Users(username, email, password)
	VALUES ($1, $2, $3)`
	_, err := db.Exec(query, username, email, encrypt(password))
	return err
}

func AddGroup(db *sql.DB, groupName string) error {
	query := `INSERT INTO _Groups(groupName)
	VALUES ($1)`
	_, err := db.Exec(query, groupName)
	return err
}

func AddUserToGroup(db *sql.DB, username, groupName string, owner bool) error {
	query := `INSERT INTO _GroupMemberships(username, groupName, owner)
	VALUES ($1, $2, $3)`
	_, err := db.Exec(query, username, groupName, owner)
	return err
}

type groupRow struct {
	username  string
	groupName string
	owner     bool
}

func GetGroupsOfUser(db *sql.DB, username string) (string, error) {
	rows, err := db.Query("SELECT * FROM _GroupMemberships WHERE username = $1", username)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var groups []groupRow

	for rows.Next() {
		var group groupRow
		if err := rows.Scan(&group.username, &group.groupName, &group.owner); err != nil {
			return "", err
		}
		groups = append(groups, group)
	}

	result := "\n"

	ownerGroups := []string{}
	userGroups := []string{}
	for _, v := range groups {
		if v.owner {
			ownerGroups = append(ownerGroups, v.groupName)
		} else {
			userGroups = append(userGroups, v.groupName)
		}
	}
	sort.Strings(ownerGroups)
	if len(ownerGroups) > 0 {
		result = result + "They are an owner of the following groups:\n\n"
		for _, v := range ownerGroups {
			result = result + text.BULLET + v + "\n"
		}
		result = result + "\n"
	}

	sort.Strings(userGroups)
	if len(userGroups) > 0 {
		result = result + "They are a member of the following groups:\n\n"
		for _, v := range userGroups {
			result = result + text.BULLET + v + "\n"
		}
		result = result + "\n"
	}

	if result == "\n" {
		return "\nThey are not in any groups.\n\n", nil
	}

	return result, nil
}

func ValidateUser(db *sql.DB, username, password string) error {
	var hash string
	row := db.QueryRow("SELECT password FROM _Users WHERE username = $1", username)
	if err := row.Scan(&hash); err != nil {
		if err == sql.ErrNoRows {
			return errors.New("the hub doesn't recognize that combination of username and password")
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return errors.New("the hub doesn't recognize that combination of username and password")
	}
	return nil
}

func encrypt(s string) string {
	result, _ := bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
	return string(result)
}
