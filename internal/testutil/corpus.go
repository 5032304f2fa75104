package testutil

// Statements is a corpus of SQL statements covering every statement kind
// and most expression forms. Every entry parses with the generic dialect,
// and its printed form parses back to the same tree.
var Statements = []string{
	// Queries
	"SELECT a, b FROM t WHERE a = 1 AND b = 2",
	"SELECT * FROM t WHERE (a = 1 OR b = 2) AND c = 3",
	"(SELECT 1) UNION SELECT 2",
	"SELECT DISTINCT a AS x, b y, c AS 'z' FROM t AS u",
	"SELECT t.*, COUNT(*), COUNT(DISTINCT b) FROM t GROUP BY a HAVING COUNT(*) > 1 AND SUM(b) < 10",
	"SELECT a FROM t ORDER BY a DESC, b ASC, c",
	"SELECT a FROM t UNION ALL SELECT a FROM u INTERSECT SELECT a FROM v ORDER BY a",
	"SELECT a FROM t UNION (SELECT b FROM u EXCEPT SELECT c FROM v)",
	"SELECT a FROM t MINUS SELECT a FROM u",
	"SELECT * FROM a LEFT OUTER JOIN b ON a.id = b.id AND a.k = b.k INNER JOIN c ON c.id = b.id",
	"SELECT * FROM a CROSS JOIN (b JOIN c ON b.x = c.x)",
	"SELECT * FROM a, b, c WHERE a.x = b.x",
	"SELECT s.a FROM (SELECT a FROM t WHERE b = 1) s",
	"SELECT a FROM t AS view",
	"SELECT a FROM t AS comment, u AS 'x'",
	"SELECT s.a FROM (SELECT a FROM t) AS key",
	"SELECT /*+ INDEX(t i) */ a FROM t",
	"SELECT a FROM t WHERE a IN (1, 2, 3) AND b NOT IN (SELECT b FROM u WHERE c = 1 OR d = 2)",
	"SELECT a FROM t WHERE a BETWEEN 1 AND 10 OR b NOT BETWEEN x + 1 AND y * 2",
	"SELECT a FROM t WHERE name LIKE 'a%' AND name NOT LIKE '%z' AND c IS NOT NULL AND d IS NULL",
	"SELECT a FROM t WHERE EXISTS (SELECT 1 FROM u) AND NOT EXISTS (SELECT 2 FROM v)",
	"SELECT a FROM t WHERE a > ALL (SELECT b FROM u) OR a = ANY (SELECT c FROM v)",
	"SELECT a FROM t WHERE NOT a = 1 AND NOT (b = 2 OR c = 3)",
	"SELECT (a + b) * c, a + b * c, a - (b - c), a - b - c, a / (b * c) FROM t",
	"SELECT -a, +b, ~c, - -d, -(a + b) FROM t",
	"SELECT a || b || 'x', a << 2, b & 1 | c ^ 2 FROM t",
	"SELECT CASE WHEN a = 1 THEN 'one' WHEN a = 2 THEN 'two' ELSE 'many' END FROM t",
	"SELECT CASE a WHEN 1 THEN 'x' END, CAST(a AS DECIMAL(10, 2)) FROM t",
	"SELECT 'it''s', N'text', X'4142', 0x4142, 1.5, .5, 1e10, 99999999999999999999 FROM t",
	"SELECT a FROM t WHERE a = ? AND b = :name AND c = $1",
	"SELECT upper(a), t.fn(b, c), LEFT(a, 2) FROM t",
	"SELECT SUM(a) OVER (PARTITION BY b ORDER BY c DESC) FROM t",
	"SELECT a, b, c, d, e, f, g, h, i, j, k, l FROM t",
	"SELECT (SELECT MAX(b) FROM u) FROM t",
	"SELECT a FROM t WHERE (a, b) IN ((1, 2), (3, 4))",
	"SELECT a COLLATE latin1 FROM t",
	"SELECT a FROM t WHERE a = 1 XOR b = 2",
	"SELECT a FROM t WHERE CURRENT OF c1",
	// Data manipulation
	"INSERT INTO t (a, b) VALUES (1, 2)",
	"INSERT INTO t VALUES (1, 'x', NULL, DEFAULT)",
	"INSERT /*+ APPEND */ INTO t x (a, b, c, d, e, f) VALUES (1, 2, 3, 4, 5, 6)",
	"INSERT INTO t (a) SELECT a FROM u WHERE b = 1",
	"UPDATE t SET a = 1, b = b + 1 WHERE id = 2 AND v = 3",
	"UPDATE t x SET x.a = NULL",
	"DELETE FROM t WHERE id = 5",
	"DELETE FROM t WHERE a = 1 AND b = 2 OR c = 3",
	"DELETE /*+ FULL(t) */ FROM s.t",
	// Definitions
	"CREATE TABLE t (id INT NOT NULL PRIMARY KEY, name VARCHAR(20) DEFAULT 'x' UNIQUE, CONSTRAINT fk FOREIGN KEY (id) REFERENCES u (id))",
	"CREATE GLOBAL TEMPORARY TABLE tmp (a INT NULL CHECK (a > 0), PRIMARY KEY (a), UNIQUE (a), CHECK (a < 10))",
	"CREATE LOCAL TEMPORARY TABLE tmp (a DOUBLE PRECISION DEFAULT (1 + 2) CONSTRAINT r REFERENCES u)",
	"CREATE VIEW v AS SELECT a FROM t",
	"CREATE OR REPLACE VIEW v (a, b) AS SELECT a, b FROM t",
	"CREATE DATABASE db",
	"DROP TABLE a, s.b",
	"DROP VIEW v",
	"DROP INDEX i ON t",
	"DROP INDEX i",
	"TRUNCATE TABLE a, b",
	// Session and transactions
	"SET @x = 1, y = 'z'",
	"CALL p(1, 2)",
	"{CALL s.p(a)}",
	"USE db",
	"COMMENT ON TABLE t IS 'table'",
	"COMMENT ON COLUMN t.a IS 'column'",
	"SAVEPOINT s1",
	"RELEASE SAVEPOINT s1",
	"ROLLBACK TO s1",
	"ROLLBACK",
	"COMMIT",
}
