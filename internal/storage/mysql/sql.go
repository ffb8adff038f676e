package mysql

// Column names mirror the sheet header so exports line up.
const createTableSQL = `
CREATE TABLE IF NOT EXISTS reservations (
  seq              BIGINT      NOT NULL AUTO_INCREMENT PRIMARY KEY,
  Nom              VARCHAR(50) NOT NULL,
  Prenom           VARCHAR(50) NOT NULL,
  Telephone        VARCHAR(15) NOT NULL,
  Ville            VARCHAR(50) NOT NULL DEFAULT '',
  Profession       VARCHAR(50) NOT NULL DEFAULT '',
  CNI              VARCHAR(20) NOT NULL,
  Prix_Chambre     INT         NOT NULL,
  Nb_Jours         INT         NOT NULL,
  Date_Arrivee     DATE        NOT NULL,
  Montant_Total    BIGINT      NOT NULL,
  Date_Reservation DATETIME    NOT NULL
) DEFAULT CHARSET = utf8mb4
`

// Dates come back as text so the shared row codec parses every backend the
// same way, independent of the DSN's parseTime/loc settings.
const selectAllSQL = `
SELECT
  Nom, Prenom, Telephone, Ville, Profession, CNI,
  CAST(Prix_Chambre AS CHAR),
  CAST(Nb_Jours AS CHAR),
  DATE_FORMAT(Date_Arrivee, '%Y-%m-%d'),
  CAST(Montant_Total AS CHAR),
  DATE_FORMAT(Date_Reservation, '%Y-%m-%d %H:%i:%s')
FROM reservations
ORDER BY seq
`

const deleteAllSQL = `DELETE FROM reservations`

const insertPrefix = "INSERT INTO reservations\n" +
	"  (Nom, Prenom, Telephone, Ville, Profession, CNI, Prix_Chambre, Nb_Jours, Date_Arrivee, Montant_Total, Date_Reservation)\n" +
	"VALUES "

// rows per INSERT statement; 11 placeholders each keeps us far below the
// 65535 placeholder limit.
const insertBatch = 500
